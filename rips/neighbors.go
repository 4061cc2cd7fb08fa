package rips

import (
	"fmt"

	"github.com/katalvlaran/lvrips/topology"
)

// LowerNeighbors indexes the 1-skeleton of k: for every edge {u, v} with
// u < v, u is recorded as a lower neighbor of v. Every edge endpoint must be
// a 0-simplex of k, otherwise ErrInconsistentSkeleton is returned.
func LowerNeighbors(k *topology.Complex) (LowerNeighborMap, error) {
	if k == nil {
		return nil, ErrComplexNil
	}

	lower := make(LowerNeighborMap)
	// edges arrive in lexicographic order, so every list fills ascending
	for _, e := range k.Range(1) {
		vs := e.Vertices()
		for _, v := range vs {
			if _, ok := k.Find(v); !ok {
				return nil, fmt.Errorf("%w: edge %v, vertex %d", ErrInconsistentSkeleton, e, v)
			}
		}
		lower[vs[1]] = append(lower[vs[1]], vs[0])
	}
	return lower, nil
}

// intersect returns the common elements of two ascending lists.
func intersect(a, b []topology.Vertex) []topology.Vertex {
	var out []topology.Vertex
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
