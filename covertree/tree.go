// Package covertree implements a cover tree over an arbitrary metric space,
// following the simplified description of Izbicki and Shelton.
package covertree

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvrips/metric"
)

// noParent marks the root (and an empty tree in Tree.root).
const noParent = -1

// node is one arena slot. Children are indices into Tree.nodes, kept in
// insertion order.
type node[P comparable] struct {
	point    P
	level    int
	parent   int
	children []int
}

func (n *node[P]) isLeaf() bool { return len(n.children) == 0 }

// Tree is a cover tree storing points of type P under a metric.
// It is not safe for concurrent use; a shared Tree needs external locking.
type Tree[P comparable] struct {
	metric metric.Metric[P]
	opts   Options
	c      float64
	nodes  []node[P]
	root   int
}

// New returns an empty Tree using m, applying any number of Options.
// Returns ErrMetricNil for a nil metric and ErrOptionViolation for bad options.
func New[P comparable](m metric.Metric[P], opts ...Option) (*Tree[P], error) {
	if m == nil {
		return nil, ErrMetricNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Tree[P]{
		metric: m,
		opts:   o,
		c:      o.CoveringConstant,
		root:   noParent,
	}, nil
}

// CoveringConstant returns the base of the covering distance.
func (t *Tree[P]) CoveringConstant() float64 { return t.c }

// Len returns the number of stored points.
func (t *Tree[P]) Len() int { return len(t.nodes) }

// Empty reports whether the tree has no root.
func (t *Tree[P]) Empty() bool { return t.root == noParent }

// Insert adds p to the tree. An empty tree makes p the root at level 0.
// Returns ErrDuplicatePoint, leaving the tree unchanged, if a stored point
// lies at distance 0 from p. Returns ErrInvalidDistance if the metric yields
// a negative, NaN or infinite value.
func (t *Tree[P]) Insert(p P) error {
	if t.root == noParent {
		t.root = t.newNode(p, 0, noParent)
		t.placed(t.root, 0)
		return nil
	}

	d, err := t.distance(t.nodes[t.root].point, p)
	if err != nil {
		return err
	}
	dup, err := t.contains(p)
	if err != nil {
		return err
	}
	if dup {
		return fmt.Errorf("%w: %v", ErrDuplicatePoint, p)
	}

	if d <= t.coveringDistance(t.nodes[t.root].level) {
		idx, depth, err := t.descend(t.root, p)
		if err != nil {
			return err
		}
		t.placed(idx, depth)
		return nil
	}
	return t.grow(p, d)
}

// InsertAll inserts points in order, stopping at the first error.
func (t *Tree[P]) InsertAll(points ...P) error {
	for i, p := range points {
		if err := t.Insert(p); err != nil {
			return fmt.Errorf("covertree: insert #%d: %w", i, err)
		}
	}
	return nil
}

// grow raises the root until p can be made the new root, then does so.
// d is the distance between p and the current root.
//
// The loop runs while d > c^(L+1), the classic "twice the covering
// distance" rule with the factor 2 generalized to c; both agree at c = 2.
func (t *Tree[P]) grow(p P, d float64) error {
	for d > t.coveringDistance(t.nodes[t.root].level+1) {
		root := &t.nodes[t.root]
		if root.isLeaf() {
			root.level++
			t.debug("raised root level", "level", root.level)
			t.opts.OnPromote(root.level)
			continue
		}

		leaf, ok, err := t.promotableLeaf()
		if err != nil {
			return err
		}
		if !ok {
			return t.rebuild(p)
		}
		t.promote(leaf)

		if d, err = t.distance(t.nodes[t.root].point, p); err != nil {
			return err
		}
	}

	old := t.root
	level := t.nodes[old].level + 1
	t.root = t.newNode(p, level, noParent)
	t.adopt(t.root, old)
	t.debug("point became root", "point", p, "level", level)
	t.opts.OnPromote(level)
	t.placed(t.root, 0)

	return nil
}

// promotableLeaf returns the first leaf, in breadth-first order, whose
// distance to the root is within the covering distance of the next level.
// For c >= 2 every leaf qualifies.
func (t *Tree[P]) promotableLeaf() (int, bool, error) {
	root := t.nodes[t.root]
	limit := t.coveringDistance(root.level + 1)

	queue := []int{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, ch := range t.nodes[cur].children {
			if !t.nodes[ch].isLeaf() {
				queue = append(queue, ch)
				continue
			}
			d, err := t.distance(root.point, t.nodes[ch].point)
			if err != nil {
				return 0, false, err
			}
			if d <= limit {
				return ch, true, nil
			}
		}
	}

	return 0, false, nil
}

// promote detaches leaf from its parent and makes it the root one level
// above the old root, which becomes its only child.
func (t *Tree[P]) promote(leaf int) {
	parent := t.nodes[leaf].parent
	siblings := t.nodes[parent].children
	for i, ch := range siblings {
		if ch == leaf {
			t.nodes[parent].children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}

	old := t.root
	t.nodes[leaf].level = t.nodes[old].level + 1
	t.nodes[leaf].parent = noParent
	t.nodes[leaf].children = nil
	t.adopt(leaf, old)
	t.root = leaf

	t.debug("promoted leaf to root", "point", t.nodes[leaf].point, "level", t.nodes[leaf].level)
	t.opts.OnPromote(t.nodes[leaf].level)
}

// rebuild makes p the root at a level covering every stored point and
// re-inserts the stored points by descent in breadth-first order. The new
// arena is built aside and swapped in only once every point is placed, so a
// failed rebuild leaves the tree as it was.
func (t *Tree[P]) rebuild(p P) error {
	points := t.levelOrder()

	level := t.nodes[t.root].level + 1
	for _, q := range points {
		d, err := t.distance(p, q)
		if err != nil {
			return err
		}
		for d > t.coveringDistance(level) {
			level++
		}
	}

	t.debug("rebuilding tree", "root", p, "level", level, "size", len(points)+1)
	t.opts.OnRebuild(len(points) + 1)

	scratch := &Tree[P]{metric: t.metric, opts: t.opts, c: t.c, root: noParent}
	scratch.nodes = make([]node[P], 0, len(points)+1)
	scratch.root = scratch.newNode(p, level, noParent)
	for _, q := range points {
		if _, _, err := scratch.descend(scratch.root, q); err != nil {
			return err
		}
	}

	t.nodes, t.root = scratch.nodes, scratch.root
	t.placed(t.root, 0)

	return nil
}

// descend walks down from start using the first-match rule and attaches p
// below the deepest node whose covering ball contains it. It returns the new
// node and its depth below start.
func (t *Tree[P]) descend(start int, p P) (int, int, error) {
	cur, depth := start, 0
	for {
		next := noParent
		for _, ch := range t.nodes[cur].children {
			d, err := t.distance(t.nodes[ch].point, p)
			if err != nil {
				return 0, 0, err
			}
			if d <= t.coveringDistance(t.nodes[ch].level) {
				next = ch
				break
			}
		}
		if next == noParent {
			break
		}
		cur = next
		depth++
	}

	idx := t.newNode(p, t.nodes[cur].level-1, cur)
	t.nodes[cur].children = append(t.nodes[cur].children, idx)

	return idx, depth + 1, nil
}

// adopt makes child the last child of parent.
func (t *Tree[P]) adopt(parent, child int) {
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
}

func (t *Tree[P]) newNode(p P, level, parent int) int {
	t.nodes = append(t.nodes, node[P]{point: p, level: level, parent: parent})
	return len(t.nodes) - 1
}

func (t *Tree[P]) placed(idx, depth int) {
	t.debug("inserted point", "point", t.nodes[idx].point, "level", t.nodes[idx].level, "depth", depth)
	t.opts.OnInsert(t.nodes[idx].level, depth)
}

// coveringDistance returns c^level.
func (t *Tree[P]) coveringDistance(level int) float64 {
	return math.Pow(t.c, float64(level))
}

// separatingDistance returns c^(level-1).
func (t *Tree[P]) separatingDistance(level int) float64 {
	return math.Pow(t.c, float64(level-1))
}

// subtreeRadius bounds the distance from a node at level to any of its
// descendants: the sum of c^i for i <= level.
func (t *Tree[P]) subtreeRadius(level int) float64 {
	return math.Pow(t.c, float64(level+1)) / (t.c - 1)
}

// distance evaluates the metric and rejects unusable values.
func (t *Tree[P]) distance(a, b P) (float64, error) {
	d := t.metric(a, b)
	if !metric.Valid(d) {
		return 0, fmt.Errorf("%w: d(%v, %v) = %v", ErrInvalidDistance, a, b, d)
	}
	return d, nil
}

func (t *Tree[P]) debug(msg string, args ...any) {
	if t.opts.Logger != nil {
		t.opts.Logger.Debug("covertree: "+msg, args...)
	}
}
