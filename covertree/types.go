// Package covertree defines options, hooks and sentinel errors for the
// cover tree index.
package covertree

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// Sentinel errors for cover tree construction, insertion and queries.
var (
	// ErrMetricNil is returned by New when no metric is supplied.
	ErrMetricNil = errors.New("covertree: metric is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("covertree: invalid option supplied")

	// ErrEmptyTree is returned by queries and traversals on a tree without a root.
	ErrEmptyTree = errors.New("covertree: tree is empty")

	// ErrDuplicatePoint is returned when a point lies at distance 0 from a stored point.
	ErrDuplicatePoint = errors.New("covertree: point already stored")

	// ErrInvalidDistance is returned when the metric yields a negative, NaN or infinite distance.
	ErrInvalidDistance = errors.New("covertree: metric returned an invalid distance")

	// ErrNegativeRadius is returned by Within for a negative or NaN radius.
	ErrNegativeRadius = errors.New("covertree: radius must be non-negative")
)

// DefaultCoveringConstant is the base of the covering and separating distances.
const DefaultCoveringConstant = 2.0

// Option configures a Tree via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the covering constant and the observation hooks of a Tree.
type Options struct {
	// CoveringConstant c > 1; the covering distance of a node at level l is c^l.
	CoveringConstant float64

	// Logger receives Debug records for promotions, rebuilds and placements.
	// Nil disables logging.
	Logger *slog.Logger

	// OnInsert is called after a point is placed, with its level and its
	// depth below the root (0 when the point became the root).
	OnInsert func(level, depth int)

	// OnPromote is called whenever the root level grows, with the new root level.
	OnPromote func(level int)

	// OnRebuild is called when an arena rebuild starts, with the number of
	// points it will hold. A rebuild that fails leaves the tree unchanged.
	OnRebuild func(size int)

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns Options with c = 2, no logger and no-op hooks.
func DefaultOptions() Options {
	return Options{
		CoveringConstant: DefaultCoveringConstant,
		OnInsert:         func(int, int) {},
		OnPromote:        func(int) {},
		OnRebuild:        func(int) {},
	}
}

// WithCoveringConstant sets the covering constant.
//
//	c > 1 and finite: accepted
//	otherwise:        ErrOptionViolation
func WithCoveringConstant(c float64) Option {
	return func(o *Options) {
		if !(c > 1) || math.IsInf(c, 1) {
			o.err = fmt.Errorf("%w: covering constant must be finite and > 1 (got %v)", ErrOptionViolation, c)
			return
		}
		o.CoveringConstant = c
	}
}

// WithLogger sets a structured logger for diagnostic tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOnInsert registers a callback run after every successful insertion.
func WithOnInsert(fn func(level, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnInsert = fn
		}
	}
}

// WithOnPromote registers a callback run whenever the root level grows.
func WithOnPromote(fn func(level int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPromote = fn
		}
	}
}

// WithOnRebuild registers a callback run whenever an arena rebuild starts.
func WithOnRebuild(fn func(size int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRebuild = fn
		}
	}
}

// Trace describes the descent path of a query point, from the root down to
// the deepest node whose covering ball contains it.
type Trace[P comparable] struct {
	// Path lists the points of the visited nodes, root first.
	Path []P
	// Levels holds the level of each node in Path.
	Levels []int
	// Distances holds the distance from the query to each node in Path.
	Distances []float64
	// RootDistances holds the distance from the root to each node in Path
	// below the root.
	RootDistances []float64
}

// Last returns the deepest node of the trace.
func (tr Trace[P]) Last() (P, bool) {
	var zero P
	if len(tr.Path) == 0 {
		return zero, false
	}
	return tr.Path[len(tr.Path)-1], true
}
