package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/distsim/bfs"
	"github.com/katalvlaran/distsim/core"
)

// TestBFS_Errors verifies that invalid inputs and options are rejected.
func TestBFS_Errors(t *testing.T) {
	// nil graph
	if _, err := bfs.BFS(nil, "A"); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	// start vertex not found
	g := core.NewGraph()
	if _, err := bfs.BFS(g, "missing"); !errors.Is(err, bfs.ErrStartVertexNotFound) {
		t.Errorf("missing start: want ErrStartVertexNotFound, got %v", err)
	}
	// negative MaxDepth is a violation
	g2 := core.NewGraph(core.WithVertices("A"))
	if _, err := bfs.BFS(g2, "A", bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
}

// TestBFS_Order covers a directed diamond and checks order and depths.
func TestBFS_Order(t *testing.T) {
	// A→B, A→C, B→D, C→D
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	_ = g.AddEdge("A", "C")
	_ = g.AddEdge("B", "D")
	_ = g.AddEdge("C", "D")

	res, err := bfs.BFS(g, "A")
	if err != nil {
		t.Fatal(err)
	}
	// Sorted neighbor expansion makes the order fully deterministic.
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
	for v, want := range map[string]int{"A": 0, "B": 1, "C": 1, "D": 2} {
		if got := res.Depth[v]; got != want {
			t.Errorf("Depth[%s] = %d; want %d", v, got, want)
		}
	}
	// D was discovered by B (sorted expansion).
	if got := res.Parent["D"]; got != "B" {
		t.Errorf("Parent[D] = %s; want B", got)
	}
}

// TestBFS_DirectionRespected ensures traversal never walks an edge backwards.
func TestBFS_DirectionRespected(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	_ = g.AddEdge("C", "B")

	res, err := bfs.BFS(g, "A")
	if err != nil {
		t.Fatal(err)
	}
	if res.Visited["C"] {
		t.Error("reached C against edge direction")
	}
}

// TestBFS_MaxDepth verifies depth limiting.
func TestBFS_MaxDepth(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	_ = g.AddEdge("B", "C")

	res, err := bfs.BFS(g, "A", bfs.WithMaxDepth(1))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(res.Order, want) {
		t.Errorf("Order = %v; want %v", res.Order, want)
	}
}

// TestBFS_Cancellation verifies the context aborts traversal.
func TestBFS_Cancellation(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := bfs.BFS(g, "A", bfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

// TestBFS_FilterNeighbor verifies filtered neighbors are skipped.
func TestBFS_FilterNeighbor(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	_ = g.AddEdge("A", "C")

	res, err := bfs.BFS(g, "A", bfs.WithFilterNeighbor(func(_, to string) bool {
		return to != "B"
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.Visited["B"] {
		t.Error("filtered neighbor B was visited")
	}
	if !res.Visited["C"] {
		t.Error("unfiltered neighbor C was not visited")
	}
}

// TestReachesAll covers both verdicts of the initiator kernel.
func TestReachesAll(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	_ = g.AddEdge("B", "C")

	ok, err := bfs.ReachesAll(g, "A")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("A reaches all; want true")
	}
	ok, err = bfs.ReachesAll(g, "C")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("C reaches nothing upstream; want false")
	}
}

// TestReachable verifies the visited-set shorthand.
func TestReachable(t *testing.T) {
	g := core.NewGraph()
	_ = g.AddEdge("A", "B")
	_ = g.AddVertex("Z")

	set, err := bfs.Reachable(g, "A")
	if err != nil {
		t.Fatal(err)
	}
	if !set["A"] || !set["B"] || set["Z"] {
		t.Errorf("Reachable(A) = %v; want {A,B}", set)
	}
}
