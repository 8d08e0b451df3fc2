package scc_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/distsim/core"
	"github.com/katalvlaran/distsim/scc"
)

// SCCSuite exercises decomposition, the state-recording predicate, and
// the initiator scan.
type SCCSuite struct {
	suite.Suite
}

// buildGraph constructs a directed graph from an edge list.
func buildGraph(edges [][2]string, isolated ...string) *core.Graph {
	g := core.NewGraph(core.WithVertices(isolated...))
	for _, e := range edges {
		_ = g.AddEdge(e[0], e[1])
	}

	return g
}

// pentagonGraph is the five-site study case: two nontrivial components
// ({A,E} and {B,D}) plus C, which reaches {B,D} but never gets back to
// A or E.
func pentagonGraph() *core.Graph {
	return buildGraph([][2]string{
		{"A", "C"}, {"A", "D"}, {"A", "E"},
		{"B", "D"},
		{"C", "B"}, {"C", "D"},
		{"D", "B"},
		{"E", "B"}, {"E", "A"},
	})
}

// twoRingGraph is the study case with two disjoint nontrivial rings.
func twoRingGraph() *core.Graph {
	return buildGraph([][2]string{
		{"A", "B"}, {"B", "A"},
		{"B", "D"}, {"D", "B"},
		{"D", "C"}, {"D", "A"},
		{"C", "F"}, {"F", "C"},
	})
}

// TestDecompose_Pentagon checks the full decomposition of the
// five-site case against mutual reachability.
func (s *SCCSuite) TestDecompose_Pentagon() {
	comps, err := scc.Decompose(pentagonGraph())
	require.NoError(s.T(), err)
	require.ElementsMatch(s.T(),
		[][]string{{"A", "E"}, {"B", "D"}, {"C"}},
		comps,
	)
}

// TestDecompose_TwoRings checks the two-ring case: {A,B,D} and {C,F}.
func (s *SCCSuite) TestDecompose_TwoRings() {
	comps, err := scc.Decompose(twoRingGraph())
	require.NoError(s.T(), err)
	require.ElementsMatch(s.T(),
		[][]string{{"A", "B", "D"}, {"C", "F"}},
		comps,
	)
}

// TestDecompose_MutualReachability verifies the defining property on
// the pentagon case: u and v share a component iff both directed paths
// exist.
func (s *SCCSuite) TestDecompose_MutualReachability() {
	g := pentagonGraph()
	comps, err := scc.Decompose(g)
	require.NoError(s.T(), err)

	compOf := make(map[string]int)
	for i, comp := range comps {
		for _, v := range comp {
			compOf[v] = i
		}
	}
	reach := make(map[string]map[string]bool)
	for _, v := range g.Vertices() {
		set := make(map[string]bool)
		var walk func(id string)
		walk = func(id string) {
			set[id] = true
			nbs, nErr := g.NeighborIDs(id)
			require.NoError(s.T(), nErr)
			for _, nb := range nbs {
				if !set[nb] {
					walk(nb)
				}
			}
		}
		walk(v)
		reach[v] = set
	}
	for _, u := range g.Vertices() {
		for _, v := range g.Vertices() {
			mutual := reach[u][v] && reach[v][u]
			require.Equal(s.T(), mutual, compOf[u] == compOf[v],
				"vertices %s and %s", u, v)
		}
	}
}

// TestDecompose_SingleComponent covers a full ring and the recording verdict.
func (s *SCCSuite) TestDecompose_SingleComponent() {
	g := buildGraph([][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}})
	comps, err := scc.Decompose(g)
	require.NoError(s.T(), err)
	require.Len(s.T(), comps, 1)
	require.Equal(s.T(), []string{"A", "B", "C"}, comps[0])

	ok, err := scc.CanRecordState(g)
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
}

// TestCanRecordState_Negative covers the split-ring verdict.
func (s *SCCSuite) TestCanRecordState_Negative() {
	ok, err := scc.CanRecordState(twoRingGraph())
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
}

// TestComponentOf covers membership lookup and the unknown-vertex error.
func (s *SCCSuite) TestComponentOf() {
	g := twoRingGraph()
	comp, err := scc.ComponentOf(g, "C")
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"C", "F"}, comp)

	_, err = scc.ComponentOf(g, "nope")
	require.ErrorIs(s.T(), err, scc.ErrUnknownVertex)
}

// TestInitiators_Pentagon: only A and E can reach every vertex.
func (s *SCCSuite) TestInitiators_Pentagon() {
	init, err := scc.Initiators(pentagonGraph())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"A", "E"}, init)
}

// TestInitiators_TwoRings: the {A,B,D} ring reaches {C,F}, never back.
func (s *SCCSuite) TestInitiators_TwoRings() {
	g := twoRingGraph()
	init, err := scc.Initiators(g)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"A", "B", "D"}, init)

	ok, err := scc.IsInitiator(g, "C")
	require.NoError(s.T(), err)
	require.False(s.T(), ok)

	_, err = scc.IsInitiator(g, "nope")
	require.ErrorIs(s.T(), err, scc.ErrUnknownVertex)
}

// TestNilGraph covers the nil-graph sentinels.
func (s *SCCSuite) TestNilGraph() {
	_, err := scc.Decompose(nil)
	require.ErrorIs(s.T(), err, scc.ErrGraphNil)
	_, err = scc.Initiators(nil)
	require.ErrorIs(s.T(), err, scc.ErrGraphNil)
}

func TestSCCSuite(t *testing.T) {
	suite.Run(t, new(SCCSuite))
}
