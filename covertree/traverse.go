package covertree

import (
	"bufio"
	"fmt"
	"io"
)

// walk visits every node in breadth-first order, siblings in insertion
// order, until fn returns false.
func (t *Tree[P]) walk(fn func(idx int) bool) {
	if t.root == noParent {
		return
	}
	queue := []int{t.root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if !fn(cur) {
			return
		}
		queue = append(queue, t.nodes[cur].children...)
	}
}

// levelOrder returns all points in breadth-first order.
func (t *Tree[P]) levelOrder() []P {
	out := make([]P, 0, len(t.nodes))
	t.walk(func(idx int) bool {
		out = append(out, t.nodes[idx].point)
		return true
	})
	return out
}

// Root returns the point stored at the root.
func (t *Tree[P]) Root() (P, error) {
	var zero P
	if t.root == noParent {
		return zero, ErrEmptyTree
	}
	return t.nodes[t.root].point, nil
}

// Level returns the level of the root. This is not the depth of the tree.
func (t *Tree[P]) Level() (int, error) {
	if t.root == noParent {
		return 0, ErrEmptyTree
	}
	return t.nodes[t.root].level, nil
}

// Points returns a snapshot of all points in breadth-first order.
func (t *Tree[P]) Points() ([]P, error) {
	if t.root == noParent {
		return nil, ErrEmptyTree
	}
	return t.levelOrder(), nil
}

// NodesByLevel groups the points by level. Within a level, points appear in
// breadth-first order.
func (t *Tree[P]) NodesByLevel() (map[int][]P, error) {
	if t.root == noParent {
		return nil, ErrEmptyTree
	}
	levels := make(map[int][]P)
	t.walk(func(idx int) bool {
		n := &t.nodes[idx]
		levels[n.level] = append(levels[n.level], n.point)
		return true
	})
	return levels, nil
}

// NodesToLevel maps every point to the level of its node.
func (t *Tree[P]) NodesToLevel() (map[P]int, error) {
	if t.root == noParent {
		return nil, ErrEmptyTree
	}
	levels := make(map[P]int, len(t.nodes))
	t.walk(func(idx int) bool {
		levels[t.nodes[idx].point] = t.nodes[idx].level
		return true
	})
	return levels, nil
}

// Depth returns the number of node layers below and including the root.
func (t *Tree[P]) Depth() int {
	if t.root == noParent {
		return 0
	}
	depth := 0
	layer := []int{t.root}
	for len(layer) > 0 {
		depth++
		var next []int
		for _, idx := range layer {
			next = append(next, t.nodes[idx].children...)
		}
		layer = next
	}
	return depth
}

// WriteTo prints one breadth-first layer per line as "level: p p p".
// It implements io.WriterTo; an empty tree yields ErrEmptyTree.
func (t *Tree[P]) WriteTo(w io.Writer) (int64, error) {
	if t.root == noParent {
		return 0, ErrEmptyTree
	}
	bw := bufio.NewWriter(w)
	var written int64

	layer := []int{t.root}
	for len(layer) > 0 {
		var next []int
		for i, idx := range layer {
			n := &t.nodes[idx]
			var (
				k   int
				err error
			)
			if i == 0 {
				k, err = fmt.Fprintf(bw, "%d: %v", n.level, n.point)
			} else {
				k, err = fmt.Fprintf(bw, " %v", n.point)
			}
			written += int64(k)
			if err != nil {
				return written, err
			}
			next = append(next, n.children...)
		}
		k, err := bw.WriteString("\n")
		written += int64(k)
		if err != nil {
			return written, err
		}
		layer = next
	}

	return written, bw.Flush()
}
