// Package deadlock implements the two deadlock-detection cores: a
// centralized wait-for-graph cycle finder and the Mitchell-Merritt
// public/private-label probe.
//
// What:
//
//   - Controller collects per-site (resource -> holder) and
//     (process -> requested resources) tables, merges them into one
//     process/resource status table, derives the wait-for graph
//     (an edge requester -> holder per resource), and enumerates its
//     simple cycles. An empty cycle set means no deadlock.
//   - DetectCycles enumerates distinct simple cycles of any directed
//     core.Graph via iterative depth-first search with tricolor
//     marking; cycles are deduplicated and emitted in canonical
//     minimal rotation, closed (first vertex repeated), sorted.
//   - LabelSite runs the Mitchell-Merritt probe on the site runtime:
//     every site carries a (public, private) label pair with distinct
//     initial values; labels jump on being blocked and travel the
//     blocked-on chain in Transmit probes; a site that sees its own
//     public label come back while public == private declares a
//     deadlock.
//
// Limitations:
//
//   - The controller keeps at most one requester and one holder per
//     resource (last write wins). Multi-request / multi-hold wait-for
//     semantics are out of scope; the shipped scenarios are 1:1.
//
// Complexity:
//
//   - DetectCycles: O(V + E) traversal plus O(C·L) cycle extraction
//     (C cycles of average length L).
//
// Errors:
//
//   - ErrUnknownTarget: a label site addressed a resource owner that is
//     not among its registered peers (programmer or scenario error; the
//     site aborts).
package deadlock
