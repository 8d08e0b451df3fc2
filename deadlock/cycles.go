// This file enumerates simple cycles of a directed graph with
// iterative depth-first search and tricolor marking.
package deadlock

import (
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/distsim/core"
)

// Vertex visitation states for the cycle search.
const (
	notVisited = iota // never seen
	onStack           // on the current DFS stack
	done              // fully explored, never revisited
)

// frame is one explicit DFS stack entry: a vertex and its neighbor
// cursor.
type frame struct {
	id   string
	nbs  []string
	next int
}

// DetectCycles inspects graph g for simple cycles.
//
// Every vertex is tried as a start once; vertices marked done are not
// revisited. On reaching a vertex already on the stack, the stack
// slice from that vertex to the top is recorded as one cycle. Cycles
// are deduplicated by canonical minimal rotation, emitted closed
// (first vertex repeated at the end), and sorted for deterministic
// output. A nil graph is treated as cycle-free.
func DetectCycles(g *core.Graph) ([][]string, error) {
	// 1. Nil graph is cycle-free
	if g == nil {
		return nil, nil
	}

	// 2. Prepare visitation state
	verts := g.Vertices()
	state := make(map[string]int, len(verts))
	seen := make(map[string]struct{}, len(verts))
	var cycles [][]string

	// 3. Try every vertex as a start once
	for _, start := range verts {
		if state[start] != notVisited {
			continue
		}
		if err := search(g, start, state, seen, &cycles); err != nil {
			return nil, fmt.Errorf("deadlock: DetectCycles: %w", err)
		}
	}

	// 4. Deterministic output order by comma-joined signature
	sort.Slice(cycles, func(i, j int) bool {
		return joinSig(cycles[i]) < joinSig(cycles[j])
	})

	return cycles, nil
}

// search runs one iterative DFS from start, recording every back-edge
// cycle it encounters.
func search(
	g *core.Graph,
	start string,
	state map[string]int,
	seen map[string]struct{},
	cycles *[][]string,
) error {
	nbs, err := g.NeighborIDs(start)
	if err != nil {
		return err
	}
	stack := []frame{{id: start, nbs: nbs}}
	path := []string{start}
	state[start] = onStack

	for len(stack) > 0 {
		f := &stack[len(stack)-1]

		// Exhausted: pop to done
		if f.next >= len(f.nbs) {
			state[f.id] = done
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]

			continue
		}

		nb := f.nbs[f.next]
		f.next++
		switch state[nb] {
		case onStack:
			// Back edge: the path slice from nb to the top is a cycle
			recordCycle(nb, path, seen, cycles)
		case notVisited:
			nbNbs, nErr := g.NeighborIDs(nb)
			if nErr != nil {
				return nErr
			}
			state[nb] = onStack
			stack = append(stack, frame{id: nb, nbs: nbNbs})
			path = append(path, nb)
		}
	}

	return nil
}

// recordCycle extracts the cycle ending at start from the current
// path, canonicalizes it, and appends it if unseen.
func recordCycle(start string, path []string, seen map[string]struct{}, cycles *[][]string) {
	idx := indexOf(path, start)
	if idx < 0 {
		return
	}
	base := append([]string(nil), path[idx:]...)

	// Canonical minimal rotation; direction is preserved (the edges
	// are directed), so no reversed variant is considered.
	rot := minimalRotation(base)
	closed := append(rot, rot[0])
	sig := joinSig(closed)
	if _, exists := seen[sig]; exists {
		return
	}
	seen[sig] = struct{}{}
	*cycles = append(*cycles, closed)
}

// indexOf returns the first index of val in s, or -1.
func indexOf(s []string, val string) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}

	return -1
}

// joinSig concatenates the elements of c with commas into a signature.
func joinSig(c []string) string {
	return strings.Join(c, ",")
}

// minimalRotation implements Booth's algorithm: the lexicographically
// minimal rotation of s, as a new slice, in O(n).
func minimalRotation(s []string) []string {
	doubled := append(append([]string(nil), s...), s...)
	n := len(s)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	res := make([]string, n)
	copy(res, doubled[k:k+n])

	return res
}
