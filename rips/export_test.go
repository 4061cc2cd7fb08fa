package rips

import "github.com/katalvlaran/lvrips/topology"

// Test bridge: runs the coface recursion against a hand-made neighbor map.

// AddCofacesForTest expands s over candidates using lower and returns the
// emitted complex.
func AddCofacesForTest(lower LowerNeighborMap, s topology.Simplex, candidates []topology.Vertex, maxDim int) (*topology.Complex, error) {
	e := &expander{
		src:   topology.NewComplex(),
		lower: lower,
		max:   maxDim,
		out:   topology.NewComplex(),
		opts:  DefaultOptions(),
	}
	err := e.addCofaces(s, candidates)
	return e.out, err
}
