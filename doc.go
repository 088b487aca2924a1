// Package fuse merges several graphs into one.
//
// # Overview
//
// A graph is a point collection (the vertices) plus edges linking them.
// Each point carries built-in fields such as position, rotation and color,
// and any number of typed attributes. Fusing graphs merges vertices that lie
// within a tolerance of each other and merges the edges between them. The
// attributes of the merged elements are blended per attribute, with a blend
// mode picked for each one.
//
// # Quick Start
//
//	import "github.com/gogpu/fuse"
//
//	p := fuse.NewProcessor(
//		fuse.WithFusion(graph.FuseNearest, 0.01),
//	)
//	res, err := p.Execute(ctx, []fuse.Source{a, b})
//	if err != nil {
//		return err
//	}
//	for _, c := range res.Clusters {
//		// c.Links index res.Vtx
//	}
//
// # Refinement
//
// Once fused, the graph can be refined twice:
//   - point/edge: edges passing through a node are split at that node
//   - edge/edge: crossing edges are split at a new shared node whose
//     attributes are interpolated from the crossed edges
//
// Both are enabled by DefaultSettings and configured through Settings,
// which can be loaded from YAML with LoadSettings.
//
// # Architecture
//
// The module is organized into:
//   - value: attribute kinds and their arithmetic
//   - blend: blend modes and operations over values
//   - points: point collections, attributes and union metadata
//   - union: blending of many sources into one target
//   - graph: graph containers, point fusion and cluster compilation
//   - fuse: the processor tying the steps together
//
// Work runs on a fixed worker pool, scope by scope, and each phase starts
// the next one once all its scopes are done.
package fuse

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
