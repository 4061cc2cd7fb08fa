package covertree

// The checks below are diagnostic: they scan breadth-first, stop at the
// first violation and never mutate the tree. An empty tree is valid, and a
// distance the metric cannot produce validly counts as a violation.

// CheckLevelInvariant reports whether every child sits exactly one level
// below its parent.
func (t *Tree[P]) CheckLevelInvariant() bool {
	ok := true
	t.walk(func(idx int) bool {
		level := t.nodes[idx].level
		for _, ch := range t.nodes[idx].children {
			if t.nodes[ch].level != level-1 {
				t.debug("level invariant violated", "parent", t.nodes[idx].point, "child", t.nodes[ch].point)
				ok = false
				return false
			}
		}
		return true
	})
	return ok
}

// CheckCoveringInvariant reports whether every child lies within the
// covering distance of its parent.
func (t *Tree[P]) CheckCoveringInvariant() bool {
	ok := true
	t.walk(func(idx int) bool {
		parent := &t.nodes[idx]
		limit := t.coveringDistance(parent.level)
		for _, ch := range parent.children {
			d, err := t.distance(parent.point, t.nodes[ch].point)
			if err != nil || d > limit {
				t.debug("covering invariant violated",
					"parent", parent.point, "child", t.nodes[ch].point, "distance", d, "limit", limit)
				ok = false
				return false
			}
		}
		return true
	})
	return ok
}

// CheckSeparatingInvariant reports whether all siblings are farther apart
// than the separating distance of their parent.
func (t *Tree[P]) CheckSeparatingInvariant() bool {
	ok := true
	t.walk(func(idx int) bool {
		parent := &t.nodes[idx]
		limit := t.separatingDistance(parent.level)
		children := parent.children
		for i := 0; i < len(children); i++ {
			for j := i + 1; j < len(children); j++ {
				p, q := t.nodes[children[i]].point, t.nodes[children[j]].point
				d, err := t.distance(p, q)
				if err != nil || d <= limit {
					t.debug("separating invariant violated", "p", p, "q", q, "distance", d, "limit", limit)
					ok = false
					return false
				}
			}
		}
		return true
	})
	return ok
}

// IsValid combines the level, covering and separating checks.
func (t *Tree[P]) IsValid() bool {
	return t.CheckLevelInvariant() &&
		t.CheckCoveringInvariant() &&
		t.CheckSeparatingInvariant()
}
