// Package raymond implements Raymond's tree-based token mutual
// exclusion on the site runtime.
//
// What:
//
//   - The sites form a tree whose edges point from each child toward
//     its parent; the root holds the unique token and may enter the
//     critical section.
//   - A site wanting the CS enqueues its own request and, unless it is
//     the root or already has a request outstanding, forwards a request
//     toward its parent. Requests are served FIFO.
//   - When the token holder serves a request from elsewhere it
//     re-roots: the new parent pointer (toward the requester) is
//     installed in the sender before the token is emitted, and the
//     receiver's first action after accepting the token is to clear
//     its own parent. The re-rooting is therefore atomic with the
//     transfer - a partial state is never observable, because only the
//     owner of a site's state ever writes it.
//
// Invariants:
//
//   - At every quiescent moment exactly one site is root, the token
//     resides at the root, and parent links from any site reach the
//     root in finitely many steps (no cycles).
//   - A self-request by the current root short-circuits: it dequeues
//     and executes locally without sending anything.
//   - A request arriving while one is already outstanding upstream is
//     queued but not re-forwarded.
//
// Sites with an exhausted workload drain: they keep forwarding
// requests and the token so live peers retain liveness.
//
// Errors:
//
//   - ErrTreeInvariant: a token arrived at a site that already is the
//     root. This indicates an implementation bug, not a scenario
//     error; the site aborts with a diagnostic.
package raymond
