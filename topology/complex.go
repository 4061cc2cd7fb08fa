package topology

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/tidwall/btree"
)

// Complex is a simplicial complex: simplices grouped by dimension and,
// within a dimension, ordered lexicographically. A vertex set is stored at
// most once; adding it again replaces the stored weight.
// A Complex is not safe for concurrent mutation.
type Complex struct {
	tree *btree.BTreeG[Simplex]
}

func less(a, b Simplex) bool { return Compare(a, b) < 0 }

// NewComplex returns a complex holding simplices. Later duplicates win.
// It does not check closure under faces; see Validate.
func NewComplex(simplices ...Simplex) *Complex {
	c := &Complex{tree: btree.NewBTreeGOptions(less, btree.Options{NoLocks: true})}
	for _, s := range simplices {
		c.tree.Set(s)
	}
	return c
}

// Add stores s, replacing a simplex with the same vertex set.
// It reports whether a replacement happened.
func (c *Complex) Add(s Simplex) bool {
	_, replaced := c.tree.Set(s)
	return replaced
}

// Find returns the stored simplex spanning vs, with its weight.
func (c *Complex) Find(vs ...Vertex) (Simplex, bool) {
	key, err := NewSimplex(vs...)
	if err != nil {
		return Simplex{}, false
	}
	return c.tree.Get(key)
}

// Lookup returns the stored simplex spanning the same vertices as s.
func (c *Complex) Lookup(s Simplex) (Simplex, bool) {
	if len(s.vertices) == 0 {
		return Simplex{}, false
	}
	return c.tree.Get(s)
}

// Contains reports whether a simplex with the vertex set of s is stored.
func (c *Complex) Contains(s Simplex) bool {
	_, ok := c.Lookup(s)
	return ok
}

// Len returns the number of simplices.
func (c *Complex) Len() int { return c.tree.Len() }

// Dimension returns the largest simplex dimension, or -1 when empty.
func (c *Complex) Dimension() int {
	s, ok := c.tree.Max()
	if !ok {
		return -1
	}
	return s.Dimension()
}

// Each calls fn for every simplex in dimension order until fn returns false.
func (c *Complex) Each(fn func(Simplex) bool) {
	c.tree.Scan(fn)
}

// Range returns the simplices of dimension dim in lexicographic order.
func (c *Complex) Range(dim int) []Simplex {
	var out []Simplex
	c.eachOfDimension(dim, func(s Simplex) bool {
		out = append(out, s)
		return true
	})
	return out
}

// Count returns the number of simplices of dimension dim.
func (c *Complex) Count(dim int) int {
	n := 0
	c.eachOfDimension(dim, func(Simplex) bool {
		n++
		return true
	})
	return n
}

// eachOfDimension seeks to the first simplex of dimension dim and walks the
// dimension group.
func (c *Complex) eachOfDimension(dim int, fn func(Simplex) bool) {
	if dim < 0 {
		return
	}
	pivot := make([]Vertex, dim+1)
	for i := range pivot {
		pivot[i] = math.MinInt64
	}
	c.tree.Ascend(Simplex{vertices: pivot}, func(s Simplex) bool {
		if s.Dimension() != dim {
			return false
		}
		return fn(s)
	})
}

// Simplices returns all simplices in dimension order.
func (c *Complex) Simplices() []Simplex {
	return c.tree.Items()
}

// Vertices returns the vertices of the 0-skeleton in ascending order.
func (c *Complex) Vertices() []Vertex {
	var out []Vertex
	c.eachOfDimension(0, func(s Simplex) bool {
		out = append(out, s.vertices[0])
		return true
	})
	return out
}

// Skeleton returns a new complex with the simplices of dimension <= k.
func (c *Complex) Skeleton(k int) *Complex {
	out := NewComplex()
	c.tree.Scan(func(s Simplex) bool {
		if s.Dimension() > k {
			return false
		}
		out.tree.Set(s)
		return true
	})
	return out
}

// Clone returns an independent copy. Simplices share their immutable
// vertex slices.
func (c *Complex) Clone() *Complex {
	return &Complex{tree: c.tree.Copy()}
}

// Filtration returns the simplices sorted by weight, then dimension, then
// vertices: the order in which a persistence calculation consumes them.
func (c *Complex) Filtration() []Simplex {
	out := c.tree.Items()
	slices.SortStableFunc(out, func(a, b Simplex) int {
		if w := cmp.Compare(a.weight, b.weight); w != 0 {
			return w
		}
		return Compare(a, b)
	})
	return out
}

// Validate checks closure under faces: every face of a stored simplex must
// be stored too. It returns ErrNotClosed naming the first missing face.
func (c *Complex) Validate() error {
	var err error
	c.tree.Scan(func(s Simplex) bool {
		for _, f := range s.Boundary() {
			if !c.Contains(f) {
				err = fmt.Errorf("%w: %v lacks face %v", ErrNotClosed, s, f)
				return false
			}
		}
		return true
	})
	return err
}

// CheckMonotone verifies that no simplex weighs less than any stored face.
// It returns ErrNotMonotone naming the first offending pair.
func (c *Complex) CheckMonotone() error {
	var err error
	c.tree.Scan(func(s Simplex) bool {
		for _, f := range s.Boundary() {
			face, ok := c.Lookup(f)
			if ok && face.weight > s.weight {
				err = fmt.Errorf("%w: %v (%v) < face %v (%v)", ErrNotMonotone, s, s.weight, face, face.weight)
				return false
			}
		}
		return true
	})
	return err
}
