// Package metric defines the distance functions consumed by the cover tree
// and the proximity-graph builder.
//
// A Metric is a pure function over two points that returns a non-negative
// distance. It must be deterministic and symmetric and is assumed to satisfy
// the triangle inequality; the cover tree relies on that assumption for its
// covering bounds and query pruning.
//
// Ready-made metrics:
//
//	Euclidean(a, b []float64)  L2 distance (gonum/floats)
//	Manhattan(a, b []float64)  L1 distance
//	Chebyshev(a, b []float64)  L∞ distance
//	Absolute(a, b float64)     |a − b| on the real line
//
// Indexed adapts a point slice plus metric into a Metric[int] over point
// indices, which is how point clouds of non-comparable values ([]float64)
// are fed to the generic cover tree:
//
//	cloud := [][]float64{{0, 0}, {1, 0}, {0, 1}}
//	m := metric.Indexed(cloud, metric.Euclidean)
//	d := m(0, 1) // 1
//
// Vector metrics panic when the two slices differ in length, as gonum's
// floats package does.
package metric
