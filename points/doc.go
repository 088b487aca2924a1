// Package points provides the point collections fuse reads from and writes
// to, and the union metadata linking fused points back to their sources.
package points
