package covertree_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/metric"
)

// newLine builds a tree over the real line with the absolute-difference metric.
func newLine(t *testing.T, points []float64, opts ...covertree.Option) *covertree.Tree[float64] {
	t.Helper()
	tree, err := covertree.New(metric.Absolute, opts...)
	require.NoError(t, err)
	require.NoError(t, tree.InsertAll(points...))
	return tree
}

// TestNew_Errors verifies that a nil metric and bad constants are rejected.
func TestNew_Errors(t *testing.T) {
	_, err := covertree.New[float64](nil)
	require.ErrorIs(t, err, covertree.ErrMetricNil)

	for _, c := range []float64{1, 0.5, 0, -2, math.NaN(), math.Inf(1)} {
		_, err := covertree.New(metric.Absolute, covertree.WithCoveringConstant(c))
		require.ErrorIs(t, err, covertree.ErrOptionViolation, "c=%v", c)
	}

	tree, err := covertree.New(metric.Absolute, covertree.WithCoveringConstant(1.3))
	require.NoError(t, err)
	require.Equal(t, 1.3, tree.CoveringConstant())
}

// TestInsert_ScenarioA inserts 0, 10, 20 with c = 2 and checks the exact shape.
func TestInsert_ScenarioA(t *testing.T) {
	tree := newLine(t, []float64{0, 10, 20})

	require.True(t, tree.IsValid())
	require.Equal(t, 3, tree.Len())

	level, err := tree.Level()
	require.NoError(t, err)
	require.Equal(t, 4, level)

	root, err := tree.Root()
	require.NoError(t, err)
	require.Equal(t, 10.0, root)

	points, err := tree.Points()
	require.NoError(t, err)
	require.Equal(t, []float64{10, 0, 20}, points)

	byLevel, err := tree.NodesByLevel()
	require.NoError(t, err)
	require.Equal(t, map[int][]float64{4: {10}, 3: {0, 20}}, byLevel)

	toLevel, err := tree.NodesToLevel()
	require.NoError(t, err)
	require.Equal(t, map[float64]int{10: 4, 0: 3, 20: 3}, toLevel)

	require.Equal(t, 2, tree.Depth())
}

// TestInsert_LeafPromotion covers repeated leaf promotion while the root
// level climbs towards a far point.
func TestInsert_LeafPromotion(t *testing.T) {
	promotions := 0
	tree := newLine(t, []float64{0, 1, 100}, covertree.WithOnPromote(func(int) { promotions++ }))

	require.True(t, tree.IsValid())

	toLevel, err := tree.NodesToLevel()
	require.NoError(t, err)
	require.Equal(t, map[float64]int{100: 7, 0: 6, 1: 5}, toLevel)

	points, err := tree.Points()
	require.NoError(t, err)
	require.Equal(t, []float64{100, 0, 1}, points)

	// six leaf promotions plus the final one making 100 the root
	require.Equal(t, 7, promotions)
	require.Equal(t, 3, tree.Depth())
}

// TestInsert_FirstMatchDescent checks that a point goes to the first
// covering child, not the nearest one.
func TestInsert_FirstMatchDescent(t *testing.T) {
	// root 10@4 with children 0@3 and 20@3; 7 is covered by 0 (d=7 <= 8)
	// although 10 is nearer.
	tree := newLine(t, []float64{0, 10, 20, 7})
	require.True(t, tree.IsValid())

	byLevel, err := tree.NodesByLevel()
	require.NoError(t, err)
	require.Equal(t, []float64{7}, byLevel[2])

	tr, err := tree.Trace(7)
	require.NoError(t, err)
	require.Equal(t, []float64{10, 0, 7}, tr.Path)
}

// TestInsert_Duplicates pins the duplicate policy: rejection, tree untouched.
func TestInsert_Duplicates(t *testing.T) {
	tree := newLine(t, []float64{0, 10, 20})
	before, err := tree.Points()
	require.NoError(t, err)

	for _, p := range []float64{0, 10, 20} {
		err := tree.Insert(p)
		require.ErrorIs(t, err, covertree.ErrDuplicatePoint, "p=%v", p)
	}
	require.Equal(t, 3, tree.Len())

	after, err := tree.Points()
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.True(t, tree.IsValid())

	// A lone root rejects itself too.
	single := newLine(t, []float64{5})
	require.ErrorIs(t, single.Insert(5), covertree.ErrDuplicatePoint)
	require.Equal(t, 1, single.Len())
}

type tagged struct {
	x   float64
	tag string
}

// TestInsert_ZeroDistanceDistinctValues rejects distinct values the metric
// cannot tell apart.
func TestInsert_ZeroDistanceDistinctValues(t *testing.T) {
	m := func(a, b tagged) float64 { return math.Abs(a.x - b.x) }
	tree, err := covertree.New(m)
	require.NoError(t, err)

	require.NoError(t, tree.InsertAll(tagged{0, "a"}, tagged{40, "b"}, tagged{1, "c"}))
	err = tree.Insert(tagged{1, "d"})
	require.ErrorIs(t, err, covertree.ErrDuplicatePoint)
	require.Equal(t, 3, tree.Len())
}

// TestInsert_InvalidDistance surfaces metrics that return unusable values.
func TestInsert_InvalidDistance(t *testing.T) {
	for name, bad := range map[string]float64{
		"nan":      math.NaN(),
		"negative": -1,
		"infinite": math.Inf(1),
	} {
		t.Run(name, func(t *testing.T) {
			d := bad
			tree, err := covertree.New(func(a, b int) float64 { return d })
			require.NoError(t, err)
			require.NoError(t, tree.Insert(1))
			require.ErrorIs(t, tree.Insert(2), covertree.ErrInvalidDistance)
		})
	}
}

// TestInsertAll_StopsAtFirstError wraps the failing position.
func TestInsertAll_StopsAtFirstError(t *testing.T) {
	tree, err := covertree.New(metric.Absolute)
	require.NoError(t, err)

	err = tree.InsertAll(1, 2, 2, 3)
	require.ErrorIs(t, err, covertree.ErrDuplicatePoint)
	require.Contains(t, err.Error(), "#2")
	require.Equal(t, 2, tree.Len())
}

// TestEmptyTree checks queries on a tree without root.
func TestEmptyTree(t *testing.T) {
	tree, err := covertree.New(metric.Absolute)
	require.NoError(t, err)
	require.True(t, tree.Empty())
	require.Zero(t, tree.Len())
	require.Zero(t, tree.Depth())

	_, err = tree.Points()
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.Level()
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.Root()
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.NodesByLevel()
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.NodesToLevel()
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.Within(0, 1)
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, _, err = tree.Nearest(0)
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.Contains(0)
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.Trace(0)
	require.ErrorIs(t, err, covertree.ErrEmptyTree)
	_, err = tree.WriteTo(&bytes.Buffer{})
	require.ErrorIs(t, err, covertree.ErrEmptyTree)

	// diagnostics never fail
	require.True(t, tree.IsValid())
}

// TestWriteTo prints one layer per line.
func TestWriteTo(t *testing.T) {
	tree := newLine(t, []float64{0, 10, 20})
	var buf bytes.Buffer
	n, err := tree.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, "4: 10\n3: 0 20\n", buf.String())
	require.Equal(t, int64(buf.Len()), n)
}

// TestHooksAndLogger checks that hooks fire and the logger receives traces.
func TestHooksAndLogger(t *testing.T) {
	var (
		levels, depths []int
		promoted       []int
		buf            bytes.Buffer
	)
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	newLine(t, []float64{0, 10, 20},
		covertree.WithLogger(logger),
		covertree.WithOnInsert(func(level, depth int) {
			levels = append(levels, level)
			depths = append(depths, depth)
		}),
		covertree.WithOnPromote(func(level int) { promoted = append(promoted, level) }),
	)

	assert.Equal(t, []int{0, 4, 3}, levels)
	assert.Equal(t, []int{0, 0, 1}, depths)
	assert.Equal(t, []int{1, 2, 3, 4}, promoted)
	assert.True(t, strings.Contains(buf.String(), "covertree: point became root"))
	assert.True(t, strings.Contains(buf.String(), "covertree: raised root level"))
}

// TestInvariants_Random inserts random sequences and validates after every step.
func TestInvariants_Random(t *testing.T) {
	for _, c := range []float64{2, 1.3, 1.7, 3} {
		rng := rand.New(rand.NewSource(int64(c * 1000)))

		// 1-D: a shuffled set of distinct integers, spread out
		line := rng.Perm(120)
		tree, err := covertree.New(metric.Absolute, covertree.WithCoveringConstant(c))
		require.NoError(t, err)
		for i, v := range line {
			require.NoError(t, tree.Insert(float64(v*3)))
			require.True(t, tree.IsValid(), "c=%v after %d insertions", c, i+1)
		}
		points, err := tree.Points()
		require.NoError(t, err)
		want := make([]float64, len(line))
		for i, v := range line {
			want[i] = float64(v * 3)
		}
		require.ElementsMatch(t, want, points)

		// 2-D: a random cloud addressed by index
		cloud := make([][]float64, 150)
		for i := range cloud {
			cloud[i] = []float64{rng.Float64() * 50, rng.Float64() * 50}
		}
		tree2, err := covertree.New(metric.Indexed(cloud, metric.Euclidean), covertree.WithCoveringConstant(c))
		require.NoError(t, err)
		for i := range cloud {
			require.NoError(t, tree2.Insert(i))
			require.True(t, tree2.IsValid(), "c=%v after %d insertions", c, i+1)
		}
		require.Equal(t, len(cloud), tree2.Len())
	}
}

// TestRebuild_FailureKeepsTree breaks the metric once a rebuild has started
// and checks that the stored points survive the failed re-insertion.
func TestRebuild_FailureKeepsTree(t *testing.T) {
	armed, broken := false, false
	m := func(a, b float64) float64 {
		if broken {
			return math.NaN()
		}
		return math.Abs(a - b)
	}
	rebuilds := 0
	tree, err := covertree.New(m,
		covertree.WithCoveringConstant(1.1),
		covertree.WithOnRebuild(func(int) {
			rebuilds++
			broken = armed
		}),
	)
	require.NoError(t, err)
	require.NoError(t, tree.InsertAll(0, 3, 7, 12, 20))

	before, err := tree.Points()
	require.NoError(t, err)
	startRebuilds := rebuilds

	armed = true
	err = tree.RebuildForTest(1e6)
	require.ErrorIs(t, err, covertree.ErrInvalidDistance)
	require.Equal(t, startRebuilds+1, rebuilds)

	armed, broken = false, false
	require.Equal(t, 5, tree.Len())
	after, err := tree.Points()
	require.NoError(t, err)
	require.Equal(t, before, after)

	found, err := tree.Contains(1e6)
	require.NoError(t, err)
	require.False(t, found)
	require.True(t, tree.IsValid())

	// the same rebuild succeeds once the metric behaves
	require.NoError(t, tree.RebuildForTest(1e6))
	require.Equal(t, 6, tree.Len())
	require.True(t, tree.IsValid())
	root, err := tree.Root()
	require.NoError(t, err)
	require.Equal(t, 1e6, root)
}

// TestChecks_DetectCorruption breaks each invariant on purpose.
func TestChecks_DetectCorruption(t *testing.T) {
	t.Run("level", func(t *testing.T) {
		tree := newLine(t, []float64{0, 10, 20})
		tree.SetLevelForTest(20, 2)
		require.False(t, tree.CheckLevelInvariant())
		require.False(t, tree.IsValid())
	})
	t.Run("covering", func(t *testing.T) {
		tree := newLine(t, []float64{0, 10, 20})
		tree.SetPointForTest(20, 30) // d(10,30) = 20 > 16
		require.True(t, tree.CheckLevelInvariant())
		require.False(t, tree.CheckCoveringInvariant())
		require.True(t, tree.CheckSeparatingInvariant())
		require.False(t, tree.IsValid())
	})
	t.Run("separating", func(t *testing.T) {
		tree := newLine(t, []float64{0, 10, 20})
		tree.SetPointForTest(20, 5) // d(0,5) = 5 <= 8
		require.True(t, tree.CheckCoveringInvariant())
		require.False(t, tree.CheckSeparatingInvariant())
		require.False(t, tree.IsValid())
	})
}

// TestChecks_InvalidDistanceIsViolation keeps the checks boolean.
func TestChecks_InvalidDistanceIsViolation(t *testing.T) {
	broken := false
	m := func(a, b float64) float64 {
		if broken {
			return math.NaN()
		}
		return math.Abs(a - b)
	}
	tree, err := covertree.New(m)
	require.NoError(t, err)
	require.NoError(t, tree.InsertAll(0, 10, 20))

	broken = true
	require.NotPanics(t, func() {
		require.False(t, tree.CheckCoveringInvariant())
	})
	require.True(t, errors.Is(tree.Insert(30), covertree.ErrInvalidDistance))
}
