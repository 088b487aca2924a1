package parallel

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrCanceled is the context cause after Scheduler.Cancel.
var ErrCanceled = errors.New("parallel: canceled")

// Scope is one contiguous index range of a sub-loop group.
type Scope struct {
	// Index is the position of the scope within its group. Scratch buffers
	// indexed by scope need no locking.
	Index int
	Start int
	End   int // exclusive
}

// Count returns the number of indices in the scope.
func (s Scope) Count() int { return s.End - s.Start }

// Scheduler runs fork-join groups on a WorkerPool.
//
// A group splits n items into scopes, runs them on the pool and then calls a
// completion callback once, on a single goroutine, after every scope has
// returned. Completion callbacks may start further groups; Wait returns when
// no group or task is left.
//
// Cancel stops later phases: groups started after a cancellation are
// skipped and pending completion callbacks do not run. Scopes already handed
// to the pool run to completion.
type Scheduler struct {
	pool   *WorkerPool
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelCauseFunc

	message  atomic.Pointer[string]
	launched atomic.Int64
}

// NewScheduler creates a scheduler running on pool.
func NewScheduler(ctx context.Context, pool *WorkerPool) *Scheduler {
	ctx, cancel := context.WithCancelCause(ctx)
	group, gctx := errgroup.WithContext(ctx)
	return &Scheduler{
		pool:   pool,
		group:  group,
		ctx:    gctx,
		cancel: cancel,
	}
}

// Context returns the context shared by every task of the scheduler. It is
// done once the scheduler is canceled or a task failed.
func (s *Scheduler) Context() context.Context { return s.ctx }

// Workers returns the number of pool workers.
func (s *Scheduler) Workers() int { return s.pool.Workers() }

// Launch runs task on its own goroutine. A non-nil error cancels the
// scheduler and is returned by Wait.
func (s *Scheduler) Launch(task func(ctx context.Context) error) {
	s.launched.Add(1)
	s.group.Go(func() error {
		if s.ctx.Err() != nil {
			return nil
		}
		return task(s.ctx)
	})
}

// StartSubLoops processes n items in scopes of at most chunk items. A chunk
// of 0 or less picks a size that gives every worker a few scopes.
// onComplete may be nil.
func (s *Scheduler) StartSubLoops(n, chunk int, onScope func(Scope), onComplete func()) {
	s.Launch(func(ctx context.Context) error {
		scopes := Scopes(n, s.chunkSize(n, chunk))
		work := make([]func(), len(scopes))
		for i, sc := range scopes {
			work[i] = func() { onScope(sc) }
		}
		s.pool.ExecuteAll(work)

		if ctx.Err() != nil || onComplete == nil {
			return nil
		}
		onComplete()
		return nil
	})
}

// ScopeCount returns how many scopes StartSubLoops(n, chunk, ...) runs, for
// sizing per-scope scratch buffers.
func (s *Scheduler) ScopeCount(n, chunk int) int {
	return len(Scopes(n, s.chunkSize(n, chunk)))
}

func (s *Scheduler) chunkSize(n, chunk int) int {
	if chunk > 0 {
		return chunk
	}
	per := s.pool.Workers() * 4
	return max((n+per-1)/per, 1)
}

// Cancel requests cancellation. The first message wins.
func (s *Scheduler) Cancel(message string) {
	s.message.CompareAndSwap(nil, &message)
	s.cancel(ErrCanceled)
}

// Canceled reports whether Cancel was called.
func (s *Scheduler) Canceled() bool { return s.message.Load() != nil }

// CancelMessage returns the message passed to the first Cancel call.
func (s *Scheduler) CancelMessage() string {
	if m := s.message.Load(); m != nil {
		return *m
	}
	return ""
}

// Launched returns how many tasks were started, groups included.
func (s *Scheduler) Launched() int { return int(s.launched.Load()) }

// Wait blocks until every task and group has finished and returns the
// first task error.
func (s *Scheduler) Wait() error {
	err := s.group.Wait()
	s.cancel(nil)
	return err
}

// Scopes splits n items into consecutive ranges of at most chunk items.
func Scopes(n, chunk int) []Scope {
	if n <= 0 {
		return nil
	}
	chunk = max(chunk, 1)
	out := make([]Scope, 0, (n+chunk-1)/chunk)
	for start := 0; start < n; start += chunk {
		out = append(out, Scope{Index: len(out), Start: start, End: min(start+chunk, n)})
	}
	return out
}
