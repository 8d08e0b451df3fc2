// This file implements the centralized controller: status-table
// merging and wait-for-graph derivation.
package deadlock

import (
	"sort"

	"github.com/katalvlaran/distsim/core"
)

// ResourceState is the controller's view of one (process, resource)
// pair.
type ResourceState uint8

const (
	// Free: the resource is neither requested nor in use.
	Free ResourceState = iota

	// Requested: the process is waiting for the resource.
	Requested

	// InUse: the process currently holds the resource.
	InUse
)

// String returns the diagnostic spelling of the state.
func (s ResourceState) String() string {
	switch s {
	case Requested:
		return "requested"
	case InUse:
		return "in-use"
	default:
		return "free"
	}
}

// Controller reconstructs the global wait-for graph from per-site
// tables. It keeps at most one requester and one holder per resource
// (last write wins); multi-request semantics are out of scope.
type Controller struct {
	// status maps process -> resource -> state.
	status map[string]map[string]ResourceState
}

// NewController returns an empty Controller.
func NewController() *Controller {
	return &Controller{status: make(map[string]map[string]ResourceState)}
}

// Collect merges one site's tables into the status table:
// resources maps resource -> holder process (InUse), processes maps
// process -> requested resources (Requested). A process that both
// requests and holds the same resource ends up InUse, matching the
// collection order of the original controller.
func (c *Controller) Collect(resources map[string]string, processes map[string][]string) {
	for proc, reqs := range processes {
		row := c.row(proc)
		for _, res := range reqs {
			row[res] = Requested
		}
	}
	for res, holder := range resources {
		c.row(holder)[res] = InUse
	}
}

// row returns (creating if needed) the status row of proc.
func (c *Controller) row(proc string) map[string]ResourceState {
	row, ok := c.status[proc]
	if !ok {
		row = make(map[string]ResourceState)
		c.status[proc] = row
	}

	return row
}

// Processes returns every known process, sorted.
func (c *Controller) Processes() []string {
	out := make([]string, 0, len(c.status))
	for proc := range c.status {
		out = append(out, proc)
	}
	sort.Strings(out)

	return out
}

// BuildWaitForGraph derives the wait-for graph: for each resource with
// both a requester and a holder, an edge requester -> holder. Every
// known process appears as a vertex, so isolated processes are tried
// as cycle starts too.
func (c *Controller) BuildWaitForGraph() *core.Graph {
	// 1. Pair up requester and holder per resource
	type pair struct{ requester, holder string }
	deps := make(map[string]pair)
	for proc, row := range c.status {
		for res, state := range row {
			p := deps[res]
			switch state {
			case Requested:
				p.requester = proc
			case InUse:
				p.holder = proc
			}
			deps[res] = p
		}
	}

	// 2. Emit vertices and edges
	wfg := core.NewGraph(core.WithVertices(c.Processes()...))
	for _, p := range deps {
		if p.requester != "" && p.holder != "" {
			_ = wfg.AddEdge(p.requester, p.holder)
		}
	}

	return wfg
}

// DetectCycles builds the wait-for graph and enumerates its distinct
// simple cycles. An empty result means no deadlock.
func (c *Controller) DetectCycles() ([][]string, error) {
	return DetectCycles(c.BuildWaitForGraph())
}
