// Package covertree provides a generic cover tree: a hierarchical index over
// an arbitrary metric space, as described by Beygelzimer, Kakade and Langford
// and simplified by Izbicki and Shelton ("Faster Cover Trees").
//
// What
//
//   - Every node holds one point and an integer level l.
//   - Covering distance of a node: c^l. Separating distance: c^(l−1).
//   - After every mutation the tree satisfies three invariants:
//   - Level:      child.level == parent.level − 1
//   - Covering:   d(parent, child) <= c^parent.level
//   - Separating: d(sibling_i, sibling_j) > c^(parent.level − 1)
//
// Insertion
//
//	An empty tree takes the first point as root at level 0. A point inside the
//	root's covering ball descends with the first-match rule: children are
//	scanned in insertion order and the first one whose covering ball contains
//	the point receives it; with no match the point becomes a new child one
//	level down. A point outside the root's ball grows the tree: leaves are
//	promoted to new roots one level higher (a lone root just raises its
//	level) until the point is within c·c^level, and then the point itself
//	becomes the root above the old one.
//
//	The first-match rule gives no balance guarantee: the invariants are a
//	postcondition of Insert, logarithmic depth is not.
//
// Duplicates
//
//	A point at distance 0 from a stored point is rejected with
//	ErrDuplicatePoint before any mutation. Callers that need multiplicity
//	keep it beside the tree (see rips.ProximityGraph).
//
// Storage
//
//	Nodes live in an arena (a growable slice) and refer to their children by
//	index. Root promotion only re-links indices; no node is copied.
//
// Queries and maintenance
//
//   - Within(q, r), Nearest(q), Contains(q): exact queries pruned by the
//     covering bound c^(l+1)/(c−1) of a subtree rooted at level l.
//   - Points, NodesByLevel, NodesToLevel, Level, Root, WriteTo: level-order
//     snapshots; ErrEmptyTree on an empty tree.
//   - CheckLevelInvariant, CheckCoveringInvariant, CheckSeparatingInvariant,
//     IsValid: diagnostics that only ever return a bool.
//   - Trace, IsHarmonic: inspect the descent path of a query point.
//   - Rebalance: optional re-rooting pass, never triggered by Insert.
//
// Usage
//
//	t, err := covertree.New(metric.Absolute)
//	if err != nil {
//		// ErrMetricNil or ErrOptionViolation
//	}
//	_ = t.InsertAll(0, 10, 20)
//	t.IsValid() // true
//
//	// With options:
//	t, err = covertree.New(m,
//		covertree.WithCoveringConstant(1.5),
//		covertree.WithLogger(slog.Default()),
//		covertree.WithOnPromote(func(level int) { /* ... */ }),
//	)
//
// Concurrency
//
//	A Tree is not safe for concurrent use. Concurrent Insert calls are
//	undefined and readers need external synchronization against writers.
package covertree
