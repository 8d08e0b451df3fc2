// This file declares options, sentinel errors, and the Result type for
// breadth-first traversal.
package bfs

import (
	"context"
	"errors"
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to BFS.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartVertexNotFound indicates that the start vertex ID does not
	// exist in the graph.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrOptionViolation indicates an option carried an invalid value.
	ErrOptionViolation = errors.New("bfs: invalid option value")
)

// Option configures optional behavior of BFS traversal.
type Option func(*Options)

// Options holds configurable parameters for BFS traversal.
type Options struct {
	// Ctx allows cancellation or timeouts; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked when a vertex is dequeued.
	// Returning an error aborts traversal with that error.
	OnVisit func(id string, depth int) error

	// MaxDepth, if non-negative, stops expansion beyond the given depth.
	// A depth of 0 visits only the start vertex. Default is -1 (no limit).
	MaxDepth int

	// FilterNeighbor, if non-nil, is called for each (from, to) pair
	// before enqueueing to. Return false to skip that neighbor.
	FilterNeighbor func(from, to string) bool

	// err collects option validation failures, surfaced by BFS.
	err error
}

// DefaultOptions returns Options with a background context, no hooks,
// no depth limit, and no filtering.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext returns an Option that sets the traversal context.
// A nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit returns an Option that installs fn as the dequeue hook.
func WithOnVisit(fn func(id string, depth int) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}

// WithMaxDepth returns an Option that limits traversal depth to limit.
// Negative limits are rejected with ErrOptionViolation.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		if limit < 0 {
			o.err = ErrOptionViolation

			return
		}
		o.MaxDepth = limit
	}
}

// WithFilterNeighbor returns an Option that filters neighbor expansion.
func WithFilterNeighbor(fn func(from, to string) bool) Option {
	return func(o *Options) {
		o.FilterNeighbor = fn
	}
}

// Result captures the outcome of a breadth-first traversal.
type Result struct {
	// Order records vertices in dequeue sequence.
	Order []string

	// Depth maps each visited vertex to its distance from the start.
	Depth map[string]int

	// Parent maps each visited vertex to the vertex that discovered it.
	// The start vertex does not appear.
	Parent map[string]string

	// Visited flags which vertices were reached.
	Visited map[string]bool
}
