package deadlock_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/distsim/core"
	"github.com/katalvlaran/distsim/deadlock"
)

// ControllerSuite exercises table merging, wait-for-graph derivation,
// and cycle enumeration.
type ControllerSuite struct {
	suite.Suite
}

// TestThreeCycle replays the four-process study case: P1 holds R1 and
// requests R2; P2 holds R2 and requests R3; P3 holds R3 and requests
// R1 and R4; P4 holds R4. Exactly one cycle P1 -> P2 -> P3 -> P1.
func (s *ControllerSuite) TestThreeCycle() {
	c := deadlock.NewController()
	c.Collect(
		map[string]string{"R1": "P1", "R4": "P4"},
		map[string][]string{"P1": {"R2"}},
	)
	c.Collect(
		map[string]string{"R2": "P2", "R3": "P3"},
		map[string][]string{"P2": {"R3"}, "P3": {"R1", "R4"}},
	)

	wfg := c.BuildWaitForGraph()
	require.True(s.T(), wfg.HasEdge("P1", "P2"))
	require.True(s.T(), wfg.HasEdge("P2", "P3"))
	require.True(s.T(), wfg.HasEdge("P3", "P1"))
	require.True(s.T(), wfg.HasEdge("P3", "P4"))
	require.Equal(s.T(), 4, wfg.EdgeCount())

	cycles, err := c.DetectCycles()
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]string{{"P1", "P2", "P3", "P1"}}, cycles)
}

// TestNoDeadlock: a straight waiting chain has no cycle.
func (s *ControllerSuite) TestNoDeadlock() {
	c := deadlock.NewController()
	c.Collect(
		map[string]string{"R1": "P1", "R2": "P2"},
		map[string][]string{"P2": {"R1"}, "P3": {"R2"}},
	)
	cycles, err := c.DetectCycles()
	require.NoError(s.T(), err)
	require.Empty(s.T(), cycles)
}

// TestTwoDisjointCycles reports both, in deterministic order.
func (s *ControllerSuite) TestTwoDisjointCycles() {
	c := deadlock.NewController()
	c.Collect(
		map[string]string{"Ra": "A", "Rb": "B", "Rc": "C", "Rd": "D"},
		map[string][]string{
			"A": {"Rb"}, "B": {"Ra"},
			"C": {"Rd"}, "D": {"Rc"},
		},
	)
	cycles, err := c.DetectCycles()
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]string{{"A", "B", "A"}, {"C", "D", "C"}}, cycles)
}

// TestCycleSoundness: every reported cycle is a real closed walk of
// the wait-for graph with no duplicated vertices.
func (s *ControllerSuite) TestCycleSoundness() {
	c := deadlock.NewController()
	c.Collect(
		map[string]string{"R1": "P1", "R2": "P2", "R3": "P3", "R5": "P5"},
		map[string][]string{
			"P1": {"R2"}, "P2": {"R3"}, "P3": {"R1"},
			"P4": {"R5"},
		},
	)
	wfg := c.BuildWaitForGraph()
	cycles, err := deadlock.DetectCycles(wfg)
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), cycles)

	for _, cycle := range cycles {
		require.GreaterOrEqual(s.T(), len(cycle), 2)
		require.Equal(s.T(), cycle[0], cycle[len(cycle)-1], "cycle must be closed")
		seen := make(map[string]bool)
		for i := 0; i+1 < len(cycle); i++ {
			require.False(s.T(), seen[cycle[i]], "duplicate vertex %s", cycle[i])
			seen[cycle[i]] = true
			require.True(s.T(), wfg.HasEdge(cycle[i], cycle[i+1]),
				"edge %s -> %s is not in the wait-for graph", cycle[i], cycle[i+1])
		}
	}
}

// TestSelfWait: a process that requests a resource it also holds adds
// no wait-for edge, so no cycle is reported.
func (s *ControllerSuite) TestSelfWait() {
	c := deadlock.NewController()
	c.Collect(
		map[string]string{"R1": "P1"},
		map[string][]string{"P1": {"R1"}},
	)
	// Collection order marks R1 as InUse for P1 after the request, so
	// the pairing degenerates: holder only, no edge, no cycle.
	cycles, err := c.DetectCycles()
	require.NoError(s.T(), err)
	require.Empty(s.T(), cycles)
}

// TestDetectCycles_Standalone covers rotation dedup on a raw graph.
func (s *ControllerSuite) TestDetectCycles_Standalone() {
	g := core.NewGraph()
	_ = g.AddEdge("b", "c")
	_ = g.AddEdge("c", "a")
	_ = g.AddEdge("a", "b")

	cycles, err := deadlock.DetectCycles(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), [][]string{{"a", "b", "c", "a"}}, cycles,
		"cycle must be emitted in canonical minimal rotation")

	cycles, err = deadlock.DetectCycles(nil)
	require.NoError(s.T(), err)
	require.Empty(s.T(), cycles)
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}
