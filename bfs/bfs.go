// This file implements the BFS walker and the reachability predicates.
package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/distsim/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    Options
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// BFS runs breadth-first search on g starting from startID, applying
// any number of functional Options. Neighbor expansion follows the
// sorted core enumeration, so runs are reproducible.
func BFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options and surface violations immediately
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 3. Verify start vertex
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	// 4. Prepare walker with capacity hints
	n := g.VertexCount()
	w := &walker{
		graph:   g,
		opts:    o,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Order:   make([]string, 0, n),
			Depth:   make(map[string]int, n),
			Parent:  make(map[string]string, n),
			Visited: make(map[string]bool, n),
		},
	}

	// 5. Seed queue with start vertex and run
	w.enqueue(startID, 0, "")

	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records its parent, and appends
// it to the queue.
func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per dequeue)
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)
		if w.opts.OnVisit != nil {
			if err := w.opts.OnVisit(item.id, item.depth); err != nil {
				return fmt.Errorf("bfs: OnVisit hook for %q: %w", item.id, err)
			}
		}

		if err := w.expand(item); err != nil {
			return err
		}
	}

	return nil
}

// expand enqueues every unseen, unfiltered neighbor of item within the
// depth limit.
func (w *walker) expand(item queueItem) error {
	if w.opts.MaxDepth >= 0 && item.depth >= w.opts.MaxDepth {
		return nil
	}
	nbs, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("bfs: NeighborIDs(%q): %w", item.id, err)
	}
	for _, nb := range nbs {
		if w.opts.FilterNeighbor != nil && !w.opts.FilterNeighbor(item.id, nb) {
			continue
		}
		if !w.visited[nb] {
			w.enqueue(nb, item.depth+1, item.id)
		}
	}

	return nil
}

// Reachable returns the set of vertices reachable from `from`
// (including `from` itself).
func Reachable(g *core.Graph, from string) (map[string]bool, error) {
	res, err := BFS(g, from)
	if err != nil {
		return nil, err
	}

	return res.Visited, nil
}

// ReachesAll reports whether every vertex of g is reachable from
// `from`. Traversal stops as soon as the covered set spans the graph.
func ReachesAll(g *core.Graph, from string) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	total := g.VertexCount()
	covered := 0
	_, err := BFS(g, from, WithOnVisit(func(string, int) error {
		covered++
		if covered == total {
			return errFullCover
		}

		return nil
	}))
	if err != nil && !errors.Is(err, errFullCover) {
		return false, err
	}

	return covered == total, nil
}

// errFullCover aborts the scan once every vertex has been covered.
var errFullCover = errors.New("bfs: full cover reached")
