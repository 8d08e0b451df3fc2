// Package site is the per-site execution runtime every coordination
// algorithm in this repository runs on: one goroutine per logical
// site, all interaction through unbounded FIFO mailboxes, no shared
// mutable state across site boundaries.
//
// What:
//
//   - ID: a run-unique, totally ordered site identity (name + insertion
//     sequence number; the sequence breaks ties portably).
//   - Mailbox: an unbounded multi-producer FIFO queue. Send never
//     blocks; Recv blocks until a message or shutdown. Per
//     sender-receiver pair, send order is preserved.
//   - Site: identity, own mailbox, peer registry, instruction list,
//     and a named logger. Before Start it applies peer registrations
//     and stashes early algorithm traffic for delivery afterwards.
//   - Network: the orchestrator. Creates sites, registers full peer
//     sets, broadcasts Start strictly afterwards, tracks workload
//     completion, and shuts the mailboxes down once the run is over.
//
// Why:
//
//   - Ricart-Agrawala, Raymond, and Mitchell-Merritt all need the same
//     substrate: identity, typed messages, FIFO delivery, a workload of
//     idle/critical segments, and a drain phase that keeps finished
//     sites answering so live peers never hang.
//
// Concurrency:
//
//   - A site's state is owned by its goroutine; the only cross-site
//     references are *Mailbox send handles, which are safe for
//     concurrent use. Sites suspend only in Recv and instruction
//     sleeps.
//
// Errors:
//
//   - ErrUnknownPeer: a send targeted an unregistered identity. This is
//     a programmer error; the site aborts its run with a diagnostic.
package site
