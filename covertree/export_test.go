package covertree

// Test bridge: corrupts a tree on purpose so the diagnostic checks can be
// exercised against broken shapes.

// SetLevelForTest overrides the level of the node storing p.
func (t *Tree[P]) SetLevelForTest(p P, level int) {
	for i := range t.nodes {
		if t.nodes[i].point == p {
			t.nodes[i].level = level
			return
		}
	}
}

// SetPointForTest replaces the point stored in the node holding old.
func (t *Tree[P]) SetPointForTest(old, p P) {
	for i := range t.nodes {
		if t.nodes[i].point == old {
			t.nodes[i].point = p
			return
		}
	}
}

// RebuildForTest runs the rebuild fallback around p directly.
func (t *Tree[P]) RebuildForTest(p P) error {
	return t.rebuild(p)
}
