package value

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// text constrains the string-backed kinds.
type text interface {
	Value
	~string
}

// textPolicy controls how a string-backed kind combines.
type textPolicy struct {
	// key is the form used for comparisons and hashing.
	key func(s string) string
	// sep joins two differing values when averaged.
	sep string
	// lexical orders by key only; otherwise by rune length, then key.
	lexical bool
	// concat enables concatenation for Add and Mult. Without it Add picks
	// the larger value, Sub the smaller and Mult keeps the first operand.
	concat bool
}

var (
	stringPolicy = textPolicy{key: identity, sep: "|", concat: true}
	namePolicy   = textPolicy{key: func(s string) string { return Name(s).Fold() }, sep: "_", concat: true}
	pathPolicy   = textPolicy{key: identity, sep: "|", lexical: true}
)

func identity(s string) string { return s }

func (p textPolicy) less(a, b string) bool {
	if !p.lexical {
		la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
		if la != lb {
			return la < lb
		}
	}
	return p.key(a) < p.key(b)
}

func (p textPolicy) equal(a, b string) bool { return p.key(a) == p.key(b) }

// textOps builds the table for a string-backed kind. Numeric modes pick
// one operand: weighted modes apply only above a half weight.
func textOps[T text](p textPolicy) typed[T] {
	minOf := func(a, b T) T {
		if p.less(string(b), string(a)) {
			return b
		}
		return a
	}
	maxOf := func(a, b T) T {
		if p.less(string(a), string(b)) {
			return b
		}
		return a
	}
	first := func(a, _ T) T { return a }
	keep := func(a T, _ float64) T { return a }
	concat := func(a, b T) T { return T(norm.NFC.String(string(a) + string(b))) }

	add, sub, mult := maxOf, minOf, first
	if p.concat {
		add = concat
		mult = concat
		sub = func(a, b T) T {
			if b == "" {
				return a
			}
			return T(strings.ReplaceAll(string(a), string(b), ""))
		}
	}

	return typed[T]{
		add:   add,
		sub:   sub,
		mult:  mult,
		min:   minOf,
		max:   maxOf,
		umin:  minOf,
		umax:  maxOf,
		amin:  minOf,
		amax:  maxOf,
		avg: func(a, b T) T {
			switch {
			case p.equal(string(a), string(b)), b == "":
				return a
			case a == "":
				return b
			case !p.concat:
				return maxOf(a, b)
			}
			return T(string(a) + p.sep + string(b))
		},
		hash: func(a, b T) T {
			h := hashCombine(hashString(p.key(string(a))), hashString(p.key(string(b))))
			return T(strconv.FormatUint(uint64(h), 10))
		},
		uhash: func(a, b T) T {
			h := hashUnordered(hashString(p.key(string(a))), hashString(p.key(string(b))))
			return T(strconv.FormatUint(uint64(h), 10))
		},
		modCW: first,
		lerp: func(a, b T, w float64) T {
			if w < 0.5 {
				return a
			}
			return b
		},
		wadd: func(a, b T, w float64) T {
			if w > 0.5 {
				return add(a, b)
			}
			return a
		},
		wsub: func(a, b T, w float64) T {
			if w > 0.5 {
				return sub(a, b)
			}
			return a
		},
		div: keep,
		mod: keep,
		toDouble: func(a T) float64 {
			f, err := strconv.ParseFloat(strings.TrimSpace(string(a)), 64)
			if err != nil {
				return 0
			}
			return f
		},
	}
}
