// Package scenario loads the JSON inputs of every executable and
// synthesizes random workloads when no file is supplied.
//
// What:
//
//   - LoadGraph: adjacency file {"nodes": [...], "edges": [[i, j]]}
//     into a core.Graph.
//   - LoadRicart: {site: [{"type": "cs"|"idle", "duration": ms}]} into
//     per-site instruction lists.
//   - LoadRaymond: {"nodes": {name: {"instructions": [...], "parent":
//     name|null}}} with exactly one root, validated into a tree.
//   - LoadTables: per-site resource/process tables for the centralized
//     detector.
//   - LoadLabels: named sites with execute/idle/block task lists and
//     their connections for the Mitchell-Merritt probe.
//   - RandomRicart / RandomRaymond: nine-site workloads with uniform
//     durations in the declared ranges, seeded for reproducibility.
//
// Validation happens at load time, before any site is created: a
// structurally invalid file is rejected with one of the sentinel errors
// below, wrapped in a diagnostic naming the file. Open and JSON syntax
// failures are wrapped with the file name too but carry no sentinel.
//
// Errors:
//
//   - ErrGraphFormat    - bad node/edge structure or duplicate labels.
//   - ErrScenarioFormat - bad instruction structure or unknown kinds.
//   - ErrRaymondRoot    - zero or multiple nodes with a null parent.
//   - ErrRaymondParent  - a parent name that is unknown or cyclic.
package scenario
