package covertree

import (
	"fmt"
	"math"
)

// Queries prune a subtree rooted at a node of level l as soon as the query
// lies farther than subtreeRadius(l) beyond the search radius; the covering
// invariant guarantees no descendant is farther from the node than that.

// Within returns every stored point at distance <= r from q, in depth-first
// order. Returns ErrEmptyTree, ErrNegativeRadius or ErrInvalidDistance.
func (t *Tree[P]) Within(q P, r float64) ([]P, error) {
	if t.root == noParent {
		return nil, ErrEmptyTree
	}
	if !(r >= 0) {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, r)
	}

	var out []P
	err := t.search(q, r, func(idx int) bool {
		out = append(out, t.nodes[idx].point)
		return true
	})
	return out, err
}

// Contains reports whether a point at distance 0 from q is stored.
func (t *Tree[P]) Contains(q P) (bool, error) {
	if t.root == noParent {
		return false, ErrEmptyTree
	}
	return t.contains(q)
}

func (t *Tree[P]) contains(q P) (bool, error) {
	found := false
	err := t.search(q, 0, func(int) bool {
		found = true
		return false
	})
	return found, err
}

// search calls hit for every node within r of q until hit returns false.
func (t *Tree[P]) search(q P, r float64, hit func(idx int) bool) error {
	if t.root == noParent {
		return nil
	}
	stack := []int{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[cur]
		d, err := t.distance(n.point, q)
		if err != nil {
			return err
		}
		if d <= r && !hit(cur) {
			return nil
		}
		if len(n.children) > 0 && d-t.subtreeRadius(n.level) <= r {
			// reversed so siblings pop in insertion order
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
	return nil
}

// Nearest returns the stored point closest to q and its distance.
// Ties resolve to the first point met in depth-first order.
func (t *Tree[P]) Nearest(q P) (P, float64, error) {
	var zero P
	if t.root == noParent {
		return zero, 0, ErrEmptyTree
	}

	best, bestD := noParent, math.Inf(1)
	stack := []int{t.root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[cur]
		d, err := t.distance(n.point, q)
		if err != nil {
			return zero, 0, err
		}
		if d < bestD {
			best, bestD = cur, d
		}
		if len(n.children) > 0 && d-t.subtreeRadius(n.level) < bestD {
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}

	return t.nodes[best].point, bestD, nil
}
