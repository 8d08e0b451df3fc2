// Package ricart implements Ricart-Agrawala distributed mutual
// exclusion over the fully connected site runtime.
//
// What:
//
//   - Clock: a Lamport logical clock (advance on local events, jump to
//     max(local, received)+1 on receives).
//   - Process: one site running the request/reply protocol. To enter
//     the critical section it stamps a request, broadcasts it, and
//     waits until every peer has approved; requests it cannot approve
//     yet are deferred and answered on exit.
//   - RunAll: wires a network of processes, starts them, awaits
//     quiescence, and shuts down.
//
// Protocol (per site):
//
//   - Enter: advance clock, snapshot as the request stamp, clear
//     approvals, broadcast Request{id, stamp}, receive until every peer
//     approved.
//   - On Request{j, Tj}: witness Tj. Reply immediately unless this site
//     holds an earlier outstanding request under the (T, identity)
//     lexicographic order; otherwise defer j.
//   - On Reply{j}: witness and mark j approved.
//   - Exit: advance clock, reply to every deferred peer, clear state.
//
// Ties on equal stamps break toward the smaller site identity; the
// identity order is the explicit insertion sequence assigned at
// startup, so it is total and stable for the whole run.
//
// A site that exhausted its workload enters drain: it answers every
// request immediately (it can never contend again), which keeps live
// peers collecting their approvals.
//
// Errors:
//
//   - site.ErrUnknownPeer (wrapped): traffic from or to an unregistered
//     identity; the affected site aborts its run.
package ricart
