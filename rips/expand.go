package rips

import (
	"fmt"

	"github.com/katalvlaran/lvrips/topology"
)

// expander holds the state of one Expand call.
type expander struct {
	src   *topology.Complex
	lower LowerNeighborMap
	max   int
	out   *topology.Complex
	opts  Options
}

// Expand returns the clique complex of the 1-skeleton of k, truncated at
// dimension maxDim (Zomorodian's incremental expansion). Every clique with at
// most maxDim+1 vertices appears exactly once.
//
// Vertices and edges that exist in k keep their weights; synthesized
// simplices of dimension >= 2 carry weight 0 until a weight pass such as
// AssignMaximumWeight runs. k is not modified.
func Expand(k *topology.Complex, maxDim int, opts ...Option) (*topology.Complex, error) {
	if k == nil {
		return nil, ErrComplexNil
	}
	if maxDim < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDimension, maxDim)
	}
	lower, err := LowerNeighbors(k)
	if err != nil {
		return nil, err
	}

	e := &expander{
		src:   k,
		lower: lower,
		max:   maxDim,
		out:   topology.NewComplex(),
		opts:  newOptions(opts),
	}
	for _, v := range k.Vertices() {
		s := topology.MustSimplex(v)
		e.emit(s)
		if ns, ok := lower[v]; ok {
			if err := e.addCofaces(s, ns); err != nil {
				return nil, err
			}
		}
	}

	if e.opts.Logger != nil {
		e.opts.Logger.Debug("rips: expanded",
			"input", k.Len(), "output", e.out.Len(), "dimension", e.out.Dimension())
	}
	return e.out, nil
}

// addCofaces emits s ∪ {n} for every candidate n and recurses with the
// candidates shared by n. A candidate already in s means the neighbor map is
// corrupt and aborts the expansion.
func (e *expander) addCofaces(s topology.Simplex, candidates []topology.Vertex) error {
	if s.Dimension() >= e.max {
		return nil
	}
	for _, n := range candidates {
		c, err := s.Coface(n)
		if err != nil {
			return fmt.Errorf("rips: coface of %v: %w", s, err)
		}
		e.emit(c)
		if next := intersect(e.lower[n], candidates); len(next) > 0 {
			if err := e.addCofaces(c, next); err != nil {
				return err
			}
		}
	}
	return nil
}

// emit stores s, back-filling the weight of vertices and edges from the source.
func (e *expander) emit(s topology.Simplex) {
	if s.Dimension() <= 1 {
		if known, ok := e.src.Lookup(s); ok {
			s.SetWeight(known.Weight())
		}
	}
	e.out.Add(s)
	e.opts.OnSimplex(s.Dimension())
}
