// This file implements Kosaraju's two-pass decomposition and the
// state-recording predicate.
package scc

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/distsim/core"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed in.
	ErrGraphNil = errors.New("scc: graph is nil")

	// ErrUnknownVertex indicates that a named vertex is absent from the graph.
	ErrUnknownVertex = errors.New("scc: unknown vertex")
)

// Decompose returns all strongly connected components of g.
//
// Kosaraju: (1) DFS over g, pushing each vertex once its out-neighbors
// are exhausted; (2) pop the stack, collecting unvisited vertices via
// DFS over the transposed graph - each collection is one component.
// Components appear in pop order; members are sorted ascending.
func Decompose(g *core.Graph) ([][]string, error) {
	// 1. Validate input
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. First pass: forward DFS, post-order stack
	verts := g.Vertices()
	visited := make(map[string]bool, len(verts))
	stack := make([]string, 0, len(verts))
	for _, v := range verts {
		if !visited[v] {
			if err := postOrder(g, v, visited, &stack); err != nil {
				return nil, fmt.Errorf("scc: forward pass: %w", err)
			}
		}
	}

	// 3. Second pass: pop stack, collect components over the transpose
	t := g.Transpose()
	collected := make(map[string]bool, len(verts))
	var comps [][]string
	for i := len(stack) - 1; i >= 0; i-- {
		v := stack[i]
		if collected[v] {
			continue
		}
		comp := make([]string, 0, 4)
		if err := collect(t, v, collected, &comp); err != nil {
			return nil, fmt.Errorf("scc: transposed pass: %w", err)
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}

// postOrder runs DFS from id over g, appending each vertex to stack
// after its out-neighbors are exhausted.
func postOrder(g *core.Graph, id string, visited map[string]bool, stack *[]string) error {
	visited[id] = true
	nbs, err := g.NeighborIDs(id)
	if err != nil {
		return err
	}
	for _, nb := range nbs {
		if !visited[nb] {
			if err = postOrder(g, nb, visited, stack); err != nil {
				return err
			}
		}
	}
	*stack = append(*stack, id)

	return nil
}

// collect gathers every vertex reachable from id over the transposed
// graph t into comp.
func collect(t *core.Graph, id string, collected map[string]bool, comp *[]string) error {
	collected[id] = true
	*comp = append(*comp, id)
	nbs, err := t.NeighborIDs(id)
	if err != nil {
		return err
	}
	for _, nb := range nbs {
		if !collected[nb] {
			if err = collect(t, nb, collected, comp); err != nil {
				return err
			}
		}
	}

	return nil
}

// ComponentOf returns the strongly connected component containing
// vertex, sorted ascending. Returns ErrUnknownVertex if vertex is
// absent.
func ComponentOf(g *core.Graph, vertex string) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.HasVertex(vertex) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, vertex)
	}
	comps, err := Decompose(g)
	if err != nil {
		return nil, err
	}
	for _, comp := range comps {
		for _, v := range comp {
			if v == vertex {
				return comp, nil
			}
		}
	}

	// Decompose covers every vertex of g, so this is unreachable.
	return nil, fmt.Errorf("%w: %q", ErrUnknownVertex, vertex)
}

// CanRecordState reports whether g permits global-state recording:
// exactly one strongly connected component covers all vertices.
func CanRecordState(g *core.Graph) (bool, error) {
	comps, err := Decompose(g)
	if err != nil {
		return false, err
	}

	return len(comps) == 1, nil
}
