// Package core defines the directed-graph substrate shared by the graph
// analyzer and the deadlock detectors: string-labelled vertices and a
// set of unweighted directed edges, with deterministic query surfaces.
//
// What:
//
//   - Graph stores vertices and directed edges with set semantics
//     (parallel edges collapse, self-loops are permitted).
//   - All enumerations (Vertices, NeighborIDs, Predecessors) are sorted
//     lexicographically, so a single run is reproducible.
//   - Transpose produces the reversed-edge graph used by Kosaraju's
//     second pass.
//
// Why:
//
//   - The analyzer (scc) needs forward and transposed traversal.
//   - The wait-for-graph controller (deadlock) reconstructs a Graph of
//     process dependencies and enumerates its cycles.
//
// Concurrency:
//
//   - A single sync.RWMutex guards all state; graphs can be built and
//     queried across goroutines. Callers treat loaded graphs as
//     immutable after construction.
//
// Complexity:
//
//   - AddVertex/AddEdge/HasVertex/HasEdge: O(1).
//   - Vertices/NeighborIDs/Predecessors:   O(n log n) in the result size.
//   - Transpose:                           O(V + E).
//
// Errors:
//
//   - ErrEmptyVertexID: a vertex ID is the empty string.
//   - ErrVertexNotFound: an operation referenced a missing vertex.
package core
