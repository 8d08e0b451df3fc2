// This file implements the initiator scan: which vertices reach the
// whole graph.
package scc

import (
	"fmt"

	"github.com/katalvlaran/distsim/bfs"
	"github.com/katalvlaran/distsim/core"
)

// IsInitiator reports whether every vertex of g is reachable from
// vertex. Returns ErrUnknownVertex if vertex is absent.
func IsInitiator(g *core.Graph, vertex string) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	if !g.HasVertex(vertex) {
		return false, fmt.Errorf("%w: %q", ErrUnknownVertex, vertex)
	}

	return bfs.ReachesAll(g, vertex)
}

// Initiators returns all valid initiators of g, sorted ascending.
// The graph is not mutated; every vertex is checked independently.
func Initiators(g *core.Graph) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	var out []string
	for _, v := range g.Vertices() {
		ok, err := bfs.ReachesAll(g, v)
		if err != nil {
			return nil, fmt.Errorf("scc: initiator scan from %q: %w", v, err)
		}
		if ok {
			out = append(out, v)
		}
	}

	return out, nil
}
