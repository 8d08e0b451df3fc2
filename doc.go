// Package distsim is a single-machine playground for classical
// distributed algorithms.
//
// 🚀 What is distsim?
//
//	Every logical site runs as its own goroutine; all coordination flows
//	through typed message mailboxes - no shared mutable state crosses a
//	site boundary. On top of that substrate the repository implements:
//
//	  • Graph analysis: Kosaraju SCC decomposition, global-state
//	    recording and initiator predicates
//	  • Ricart-Agrawala mutual exclusion with Lamport clocks
//	  • Raymond's token tree with dynamic re-rooting
//	  • Deadlock detection: a centralized wait-for-graph cycle finder
//	    and the Mitchell-Merritt public/private-label probe
//
// ✨ Why choose distsim?
//
//   - Faithful               — the message protocols follow the textbook
//     algorithms step by step
//   - Observable             — every site narrates its progress through a
//     structured logger
//   - Deterministic surfaces — sorted vertex enumeration and canonical
//     cycle output keep runs reproducible
//
// Everything is organized one package per concern:
//
//	core/      — directed graph primitives shared by analyzer & detectors
//	bfs/       — breadth-first traversal and reachability
//	scc/       — strongly connected components and initiator scanning
//	site/      — the per-site runtime: mailboxes, peers, instructions
//	ricart/    — Ricart-Agrawala mutual exclusion
//	raymond/   — Raymond token-tree mutual exclusion
//	deadlock/  — wait-for-graph controller and Mitchell-Merritt labels
//	scenario/  — JSON scenario loading and random workload synthesis
//	cmd/       — one executable per algorithm
//
// Each executable reads its graph or scenario from a JSON file named on
// the command line (the formats are documented in package scenario);
// cmd/ricart and cmd/raymond synthesize a random one when none is given.
package distsim
