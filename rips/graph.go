package rips

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/metric"
	"github.com/katalvlaran/lvrips/topology"
)

// ProximityGraph returns the epsilon-neighborhood graph of points: node i
// stands for points[i], and {i, j} is an edge weighted m(i, j) whenever
// m(i, j) <= epsilon.
//
// Neighbors are found with a cover tree over point indices; points at
// distance 0 from each other share one tree node. WithBruteForce compares
// every pair instead. Both backends yield the same graph.
func ProximityGraph[P any](points []P, m metric.Metric[P], epsilon float64, opts ...Option) (*simple.WeightedUndirectedGraph, error) {
	if m == nil {
		return nil, ErrMetricNil
	}
	if !(epsilon >= 0) {
		return nil, fmt.Errorf("%w: %v", ErrNegativeEpsilon, epsilon)
	}
	o := newOptions(opts)

	g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i := range points {
		g.AddNode(simple.Node(i))
	}

	dist := metric.Indexed(points, m)
	var err error
	if o.BruteForce {
		err = bruteForceEdges(g, len(points), dist, epsilon)
	} else {
		err = coverTreeEdges(g, len(points), dist, epsilon, o)
	}
	if err != nil {
		return nil, err
	}

	if o.Logger != nil {
		o.Logger.Debug("rips: proximity graph",
			"points", len(points), "edges", g.Edges().Len(), "epsilon", epsilon, "bruteForce", o.BruteForce)
	}
	return g, nil
}

func bruteForceEdges(g *simple.WeightedUndirectedGraph, n int, dist metric.Metric[int], epsilon float64) error {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := dist(i, j)
			if !metric.Valid(d) {
				return fmt.Errorf("%w: d(%d, %d) = %v", covertree.ErrInvalidDistance, i, j, d)
			}
			if d <= epsilon {
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), d))
			}
		}
	}
	return nil
}

func coverTreeEdges(g *simple.WeightedUndirectedGraph, n int, dist metric.Metric[int], epsilon float64, o Options) error {
	treeOpts := o.CoverTree
	if o.Logger != nil {
		treeOpts = append([]covertree.Option{covertree.WithLogger(o.Logger)}, treeOpts...)
	}
	tree, err := covertree.New(dist, treeOpts...)
	if err != nil {
		return err
	}

	// members[r] lists the indices represented by tree node r, r first
	members := make(map[int][]int, n)
	for i := 0; i < n; i++ {
		err := tree.Insert(i)
		if err == nil {
			members[i] = []int{i}
			continue
		}
		if !errors.Is(err, covertree.ErrDuplicatePoint) {
			return fmt.Errorf("rips: index point %d: %w", i, err)
		}
		rep, _, err := tree.Nearest(i)
		if err != nil {
			return err
		}
		members[rep] = append(members[rep], i)
	}

	for r, rs := range members {
		near, err := tree.Within(r, epsilon)
		if err != nil {
			return err
		}
		for _, q := range near {
			for _, a := range rs {
				for _, b := range members[q] {
					if a >= b {
						continue
					}
					if d := dist(a, b); d <= epsilon {
						g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(a), simple.Node(b), d))
					}
				}
			}
		}
	}
	return nil
}

// FromGraph returns the 1-skeleton of g: a 0-simplex of weight 0 per node and
// a 1-simplex per edge carrying the edge weight. Self loops are ignored.
// A nil g, including a nil *simple.WeightedUndirectedGraph, yields
// ErrGraphNil; typed nils of other graph implementations are not detected.
func FromGraph(g graph.WeightedUndirected) (*topology.Complex, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if wg, ok := g.(*simple.WeightedUndirectedGraph); ok && wg == nil {
		return nil, ErrGraphNil
	}

	k := topology.NewComplex()
	nodes := g.Nodes()
	for nodes.Next() {
		u := nodes.Node().ID()
		k.Add(topology.MustSimplex(topology.Vertex(u)))

		to := g.From(u)
		for to.Next() {
			v := to.Node().ID()
			if v <= u {
				continue
			}
			w, ok := g.Weight(u, v)
			if !ok {
				continue
			}
			k.Add(topology.MustSimplex(topology.Vertex(u), topology.Vertex(v)).WithWeight(w))
		}
	}
	return k, nil
}

// Build returns the weighted Vietoris-Rips complex of points at scale
// epsilon up to dimension maxDim: the proximity graph's 1-skeleton is
// expanded and every higher simplex takes the weight of its heaviest edge.
func Build[P any](points []P, m metric.Metric[P], epsilon float64, maxDim int, opts ...Option) (*topology.Complex, error) {
	if maxDim < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDimension, maxDim)
	}
	g, err := ProximityGraph(points, m, epsilon, opts...)
	if err != nil {
		return nil, err
	}
	skeleton, err := FromGraph(g)
	if err != nil {
		return nil, err
	}
	k, err := Expand(skeleton, maxDim, opts...)
	if err != nil {
		return nil, err
	}
	return AssignMaximumWeight(k, 1)
}
