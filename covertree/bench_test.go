package covertree_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/metric"
)

// randomCloud returns n points uniformly drawn from [0,100)^dim.
func randomCloud(n, dim int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	cloud := make([][]float64, n)
	for i := range cloud {
		cloud[i] = make([]float64, dim)
		for j := range cloud[i] {
			cloud[i][j] = rng.Float64() * 100
		}
	}
	return cloud
}

// BenchmarkInsert measures building a tree over 2 000 planar points.
func BenchmarkInsert(b *testing.B) {
	cloud := randomCloud(2000, 2, 1)
	m := metric.Indexed(cloud, metric.Euclidean)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree, _ := covertree.New(m)
		for j := range cloud {
			_ = tree.Insert(j)
		}
	}
}

// BenchmarkWithin measures range queries against a prebuilt tree.
func BenchmarkWithin(b *testing.B) {
	cloud := randomCloud(2000, 3, 2)
	m := metric.Indexed(cloud, metric.Euclidean)
	tree, _ := covertree.New(m)
	for j := range cloud {
		_ = tree.Insert(j)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tree.Within(i%len(cloud), 5)
	}
}
