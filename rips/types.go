// Package rips defines options, hooks, combiners and sentinel errors for
// Vietoris-Rips expansion.
package rips

import (
	"errors"
	"log/slog"
	"math"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/topology"
)

// Sentinel errors for expansion, weight assignment and graph construction.
var (
	// ErrComplexNil is returned when a nil complex is supplied.
	ErrComplexNil = errors.New("rips: complex is nil")

	// ErrGraphNil is returned by FromGraph for a nil graph.
	ErrGraphNil = errors.New("rips: graph is nil")

	// ErrMetricNil is returned when no metric is supplied.
	ErrMetricNil = errors.New("rips: metric is nil")

	// ErrInconsistentSkeleton is returned when a simplex references a vertex
	// missing from the 0-skeleton.
	ErrInconsistentSkeleton = errors.New("rips: simplex references a vertex outside the 0-skeleton")

	// ErrDimensionMismatch is returned when the number of vertex values
	// differs from the number of vertices.
	ErrDimensionMismatch = errors.New("rips: value count does not match vertex count")

	// ErrNegativeDimension is returned for a negative maximum dimension.
	ErrNegativeDimension = errors.New("rips: dimension must be non-negative")

	// ErrNegativeEpsilon is returned for a negative or NaN neighborhood radius.
	ErrNegativeEpsilon = errors.New("rips: epsilon must be non-negative")

	// ErrCombinerNil is returned by AssignData for a nil combiner.
	ErrCombinerNil = errors.New("rips: combiner is nil")
)

// LowerNeighborMap maps a vertex to the ascending list of smaller vertices
// it shares an edge with.
type LowerNeighborMap map[topology.Vertex][]topology.Vertex

// Option configures expansion and graph construction.
type Option func(*Options)

// Options holds hooks and the neighbor backend selection.
type Options struct {
	// Logger receives Debug records summarizing each call. Nil disables logging.
	Logger *slog.Logger

	// OnSimplex is called for every simplex emitted by Expand, with its dimension.
	OnSimplex func(dim int)

	// BruteForce selects the quadratic pairwise scan instead of the cover tree
	// when building a proximity graph.
	BruteForce bool

	// CoverTree holds options forwarded to the cover tree backend.
	CoverTree []covertree.Option
}

// DefaultOptions returns Options using the cover tree backend, no logger and
// a no-op OnSimplex.
func DefaultOptions() Options {
	return Options{
		OnSimplex: func(int) {},
	}
}

func newOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOnSimplex registers a callback run for every emitted simplex.
func WithOnSimplex(fn func(dim int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnSimplex = fn
		}
	}
}

// WithBruteForce builds proximity graphs by comparing every pair of points.
func WithBruteForce() Option {
	return func(o *Options) {
		o.BruteForce = true
	}
}

// WithCoverTreeOptions appends options for the cover tree backend.
func WithCoverTreeOptions(opts ...covertree.Option) Option {
	return func(o *Options) {
		o.CoverTree = append(o.CoverTree, opts...)
	}
}

// Combiner folds vertex values into a simplex weight. Implementations must
// be associative and commutative.
type Combiner interface {
	Combine(acc, value float64) float64
}

// CombineFunc adapts a plain function to Combiner.
type CombineFunc func(acc, value float64) float64

// Combine calls f(acc, value).
func (f CombineFunc) Combine(acc, value float64) float64 { return f(acc, value) }

// Max and Min are the combiners used by AssignMaximumData and AssignMinimumData.
var (
	Max Combiner = CombineFunc(math.Max)
	Min Combiner = CombineFunc(math.Min)
)
