package rips

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lvrips/topology"
)

// AssignMaximumWeight returns a copy of k in which every simplex of
// dimension > minDim weighs as much as its heaviest face. Simplices are
// processed faces first, so weights propagate upwards through all dimensions.
// Faces missing from k are skipped; a simplex with no face in k keeps its
// weight. Afterwards weight(f) <= weight(s) holds for every stored face f of
// every such simplex s.
func AssignMaximumWeight(k *topology.Complex, minDim int) (*topology.Complex, error) {
	if k == nil {
		return nil, ErrComplexNil
	}

	out := k.Clone()
	for _, s := range k.Simplices() {
		if s.Dimension() <= minDim {
			continue
		}
		w, found := math.Inf(-1), false
		for _, f := range s.Boundary() {
			if face, ok := out.Lookup(f); ok {
				w = math.Max(w, face.Weight())
				found = true
			}
		}
		if found {
			out.Add(s.WithWeight(w))
		}
	}
	return out, nil
}

// AssignData returns a copy of k in which every simplex weighs
// combine(...combine(init, value(v0))..., value(vn)) over its vertices.
//
// The vertices of k, sorted ascending, are matched to values by position,
// so values[i] belongs to the i-th smallest vertex. A length mismatch yields
// ErrDimensionMismatch.
func AssignData(k *topology.Complex, values []float64, init float64, combine Combiner) (*topology.Complex, error) {
	if k == nil {
		return nil, ErrComplexNil
	}
	if combine == nil {
		return nil, ErrCombinerNil
	}
	if fn, ok := combine.(CombineFunc); ok && fn == nil {
		return nil, ErrCombinerNil
	}

	index := vertexIndex(k)
	if len(index) != len(values) {
		return nil, fmt.Errorf("%w: %d values for %d vertices", ErrDimensionMismatch, len(values), len(index))
	}

	out := topology.NewComplex()
	k.Each(func(s topology.Simplex) bool {
		w := init
		for _, v := range s.Vertices() {
			w = combine.Combine(w, values[index[v]])
		}
		out.Add(s.WithWeight(w))
		return true
	})
	return out, nil
}

// AssignMaximumData weights every simplex by the largest value of its vertices.
func AssignMaximumData(k *topology.Complex, values []float64) (*topology.Complex, error) {
	return AssignData(k, values, -math.MaxFloat64, Max)
}

// AssignMinimumData weights every simplex by the smallest value of its vertices.
func AssignMinimumData(k *topology.Complex, values []float64) (*topology.Complex, error) {
	return AssignData(k, values, math.MaxFloat64, Min)
}

// vertexIndex numbers every vertex occurring in k by ascending order.
func vertexIndex(k *topology.Complex) map[topology.Vertex]int {
	seen := make(map[topology.Vertex]struct{})
	k.Each(func(s topology.Simplex) bool {
		for _, v := range s.Vertices() {
			seen[v] = struct{}{}
		}
		return true
	})

	sorted := make([]topology.Vertex, 0, len(seen))
	for v := range seen {
		sorted = append(sorted, v)
	}
	slices.Sort(sorted)

	index := make(map[topology.Vertex]int, len(sorted))
	for i, v := range sorted {
		index[v] = i
	}
	return index
}
