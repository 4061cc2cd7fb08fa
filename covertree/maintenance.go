package covertree

import (
	"cmp"
	"slices"
)

// Trace follows the first-match descent of q from the root and records the
// distances met on the way. The root is always part of the path, even when
// its covering ball does not contain q; every other node on the path does.
func (t *Tree[P]) Trace(q P) (Trace[P], error) {
	var tr Trace[P]
	if t.root == noParent {
		return tr, ErrEmptyTree
	}

	root := t.nodes[t.root].point
	cur := t.root
	for {
		n := &t.nodes[cur]
		d, err := t.distance(q, n.point)
		if err != nil {
			return tr, err
		}
		tr.Path = append(tr.Path, n.point)
		tr.Levels = append(tr.Levels, n.level)
		tr.Distances = append(tr.Distances, d)
		if cur != t.root {
			rd, err := t.distance(root, n.point)
			if err != nil {
				return tr, err
			}
			tr.RootDistances = append(tr.RootDistances, rd)
		}

		next := noParent
		for _, ch := range n.children {
			dc, err := t.distance(q, t.nodes[ch].point)
			if err != nil {
				return tr, err
			}
			if dc <= t.coveringDistance(t.nodes[ch].level) {
				next = ch
				break
			}
		}
		if next == noParent {
			return tr, nil
		}
		cur = next
	}
}

// covered returns the trace distances of the nodes whose covering ball
// contains the query.
func (t *Tree[P]) covered(tr Trace[P]) []float64 {
	out := make([]float64, 0, len(tr.Distances))
	for i, d := range tr.Distances {
		if d <= t.coveringDistance(tr.Levels[i]) {
			out = append(out, d)
		}
	}
	return out
}

// IsHarmonic reports whether the distances from q to the covering nodes on
// its descent path never increase on the way down.
func (t *Tree[P]) IsHarmonic(q P) (bool, error) {
	tr, err := t.Trace(q)
	if err != nil {
		return false, err
	}
	ds := t.covered(tr)
	for i := 1; i < len(ds); i++ {
		if ds[i] > ds[i-1] {
			return false, nil
		}
	}
	return true, nil
}

// Rebalance is an explicit maintenance pass; Insert never calls it.
//
// It traces q and, when at least two covering distances were recorded and a
// level below the current root level already covers the largest of them,
// re-roots the tree at the deepest node of the trace with that level. The
// remaining points are re-inserted in descending distance from the new
// root. It reports whether the tree was re-rooted. On error the tree is left
// as it was.
func (t *Tree[P]) Rebalance(q P) (bool, error) {
	tr, err := t.Trace(q)
	if err != nil {
		return false, err
	}
	ds := t.covered(tr)
	if len(ds) < 2 {
		return false, nil
	}
	maxD := slices.Max(ds)
	if maxD <= 0 {
		return false, nil
	}

	current := t.nodes[t.root].level
	level := current
	for maxD <= t.coveringDistance(level) {
		level--
	}
	level++
	if level >= current {
		return false, nil
	}

	newRoot, _ := tr.Last()
	type entry struct {
		p P
		d float64
	}
	rest := make([]entry, 0, len(t.nodes)-1)
	for _, p := range t.levelOrder() {
		if p == newRoot {
			continue
		}
		d, err := t.distance(newRoot, p)
		if err != nil {
			return false, err
		}
		rest = append(rest, entry{p, d})
	}
	slices.SortStableFunc(rest, func(a, b entry) int { return cmp.Compare(b.d, a.d) })

	t.opts.OnRebuild(len(t.nodes))
	scratch := &Tree[P]{metric: t.metric, opts: t.opts, c: t.c, root: noParent}
	scratch.opts.OnInsert = func(int, int) {}
	scratch.root = scratch.newNode(newRoot, level, noParent)
	for _, e := range rest {
		if err := scratch.Insert(e.p); err != nil {
			return false, err
		}
	}

	t.nodes, t.root = scratch.nodes, scratch.root
	t.debug("rebalanced tree", "root", newRoot, "level", level, "size", len(t.nodes))

	return true, nil
}
