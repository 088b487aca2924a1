// Package graph holds the node and edge container used by graph fusion.
//
// A Graph is built in phases. Nodes and edges are appended single-threaded,
// typically at the join point of a parallel phase; validity flags may be
// cleared concurrently since they only ever go from valid to invalid.
// BuildSubGraphs then splits the valid part of the graph into connected
// clusters, and a Builder compiles them into output collections.
//
// UnionGraph is the fusion front end: it merges coincident points of
// several sources into shared nodes and deduplicates the edges between
// them before the result is turned into a Graph.
package graph
