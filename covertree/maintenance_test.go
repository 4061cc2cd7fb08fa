package covertree_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/metric"
)

// MaintenanceSuite exercises Trace, IsHarmonic and Rebalance on the tree
// built from 0, 10, 20 (root 10@4, children 0@3 and 20@3).
type MaintenanceSuite struct {
	suite.Suite
	tree *covertree.Tree[float64]
}

func (s *MaintenanceSuite) SetupTest() {
	tree, err := covertree.New(metric.Absolute)
	require.NoError(s.T(), err)
	require.NoError(s.T(), tree.InsertAll(0, 10, 20))
	s.tree = tree
}

// TestTrace records path, levels and both distance series.
func (s *MaintenanceSuite) TestTrace() {
	tr, err := s.tree.Trace(19)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{10, 20}, tr.Path)
	require.Equal(s.T(), []int{4, 3}, tr.Levels)
	require.Equal(s.T(), []float64{9, 1}, tr.Distances)
	require.Equal(s.T(), []float64{10}, tr.RootDistances)

	last, ok := tr.Last()
	require.True(s.T(), ok)
	require.Equal(s.T(), 20.0, last)
}

// TestIsHarmonic distinguishes shrinking from growing path distances.
func (s *MaintenanceSuite) TestIsHarmonic() {
	ok, err := s.tree.IsHarmonic(19) // 9 then 1
	require.NoError(s.T(), err)
	require.True(s.T(), ok)

	ok, err = s.tree.IsHarmonic(14) // 4 then 6
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
}

// TestRebalance_NoChange leaves the tree alone when no lower level suffices.
func (s *MaintenanceSuite) TestRebalance_NoChange() {
	changed, err := s.tree.Rebalance(19)
	require.NoError(s.T(), err)
	require.False(s.T(), changed)

	points, err := s.tree.Points()
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{10, 0, 20}, points)
}

// TestRebalance_ReRoots re-roots at the deepest trace node and keeps the
// point set and the invariants.
func (s *MaintenanceSuite) TestRebalance_ReRoots() {
	rebuilds := 0
	tree, err := covertree.New(metric.Absolute, covertree.WithOnRebuild(func(int) { rebuilds++ }))
	require.NoError(s.T(), err)
	require.NoError(s.T(), tree.InsertAll(0, 10, 20))

	changed, err := tree.Rebalance(14)
	require.NoError(s.T(), err)
	require.True(s.T(), changed)
	require.Equal(s.T(), 1, rebuilds)

	require.True(s.T(), tree.IsValid())
	require.Equal(s.T(), 3, tree.Len())

	points, err := tree.Points()
	require.NoError(s.T(), err)
	require.Equal(s.T(), []float64{0, 20, 10}, points)

	toLevel, err := tree.NodesToLevel()
	require.NoError(s.T(), err)
	require.Equal(s.T(), map[float64]int{0: 5, 20: 4, 10: 3}, toLevel)
}

// TestRebalance_SinglePoint has nothing to do.
func (s *MaintenanceSuite) TestRebalance_SinglePoint() {
	tree, err := covertree.New(metric.Absolute)
	require.NoError(s.T(), err)
	require.NoError(s.T(), tree.Insert(3))

	changed, err := tree.Rebalance(3)
	require.NoError(s.T(), err)
	require.False(s.T(), changed)
}

func TestMaintenanceSuite(t *testing.T) {
	suite.Run(t, new(MaintenanceSuite))
}
