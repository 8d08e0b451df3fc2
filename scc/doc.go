// Package scc implements the one-shot graph analyzer: Kosaraju
// decomposition into strongly connected components, the global-state
// recording predicate, and the initiator scan.
//
// What:
//
//   - Decompose(g): all SCCs, emitted in pop order of the first-pass
//     stack, members sorted for reproducibility.
//   - ComponentOf(g, v): the SCC containing v - the set of sites that
//     can witness a global-state recording started anywhere inside it.
//   - CanRecordState(g): true iff exactly one SCC covers the graph.
//   - Initiators(g) / IsInitiator(g, v): vertices from which every
//     other vertex is reachable.
//
// Why:
//
//   - On a directed site graph, global-state recording needs mutual
//     reachability (one SCC); an initiator must reach everyone.
//
// Complexity:
//
//   - Decompose:   O(V + E) twice (forward pass + transposed pass).
//   - Initiators:  O(V·(V + E)) - one BFS per candidate.
//
// Errors:
//
//   - ErrGraphNil      if g is nil.
//   - ErrUnknownVertex if a named vertex is absent. Callers are expected
//     to report it and continue with their remaining outputs.
package scc
