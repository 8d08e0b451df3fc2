// Package bfs provides breadth-first search over a core.Graph,
// returning visit order, depths, and parent links, plus the
// reachability predicates the initiator scanner builds on.
//
// What:
//
//   - BFS(g, startID, opts...): FIFO traversal from a start vertex with
//     optional hooks, depth limiting, and neighbor filtering.
//   - Reachable(g, from): the set of vertices reachable from a vertex.
//   - ReachesAll(g, from): true iff every vertex is reachable from
//     `from`, with an early exit once the covered set spans the graph.
//
// Complexity:
//
//   - Time:   O(V + E) plus hook overhead.
//   - Memory: O(V) for the queue and visited set.
//
// Options:
//
//   - WithContext(ctx)       cancellation via context.Context.
//   - WithOnVisit(fn)        hook on dequeue; error aborts traversal.
//   - WithMaxDepth(limit)    stop expanding beyond the given depth (>=0).
//   - WithFilterNeighbor(fn) skip neighbors for which fn returns false.
//
// Errors:
//
//   - ErrGraphNil            if g is nil.
//   - ErrStartVertexNotFound if startID is missing.
//   - ErrOptionViolation     for invalid option values.
//   - context.Canceled       if ctx is done.
//   - any error returned by OnVisit.
package bfs
