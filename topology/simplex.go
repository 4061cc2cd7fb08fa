package topology

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Vertex identifies a vertex of a simplicial complex. It matches the int64
// node IDs of gonum graphs.
type Vertex int64

// Simplex is an ordered set of unique vertices carrying a filtration weight.
// The vertex sequence is immutable once built; only the weight changes.
type Simplex struct {
	vertices []Vertex // ascending, duplicate-free
	weight   float64
}

// NewSimplex builds a simplex from vs in any order.
// Returns ErrEmptySimplex for no vertices and ErrDuplicateVertex for repeats.
func NewSimplex(vs ...Vertex) (Simplex, error) {
	if len(vs) == 0 {
		return Simplex{}, ErrEmptySimplex
	}
	sorted := slices.Clone(vs)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return Simplex{}, fmt.Errorf("%w: %d", ErrDuplicateVertex, sorted[i])
		}
	}
	return Simplex{vertices: sorted}, nil
}

// MustSimplex is like NewSimplex but panics on invalid input.
func MustSimplex(vs ...Vertex) Simplex {
	s, err := NewSimplex(vs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Dimension returns the number of vertices minus one.
func (s Simplex) Dimension() int { return len(s.vertices) - 1 }

// Vertices returns a copy of the ascending vertex sequence.
func (s Simplex) Vertices() []Vertex { return slices.Clone(s.vertices) }

// Weight returns the filtration weight.
func (s Simplex) Weight() float64 { return s.weight }

// SetWeight sets the filtration weight.
func (s *Simplex) SetWeight(w float64) { s.weight = w }

// WithWeight returns a copy of s carrying weight w.
func (s Simplex) WithWeight(w float64) Simplex {
	s.weight = w
	return s
}

// Contains reports whether v is a vertex of s.
func (s Simplex) Contains(v Vertex) bool {
	_, ok := slices.BinarySearch(s.vertices, v)
	return ok
}

// Equal reports whether s and o span the same vertex set. Weights are ignored.
func (s Simplex) Equal(o Simplex) bool {
	return slices.Equal(s.vertices, o.vertices)
}

// Boundary returns the codimension-1 faces of s, each with weight 0.
// A vertex has no faces.
func (s Simplex) Boundary() []Simplex {
	if len(s.vertices) < 2 {
		return nil
	}
	faces := make([]Simplex, len(s.vertices))
	for i := range s.vertices {
		vs := make([]Vertex, 0, len(s.vertices)-1)
		vs = append(vs, s.vertices[:i]...)
		vs = append(vs, s.vertices[i+1:]...)
		faces[i] = Simplex{vertices: vs}
	}
	return faces
}

// Coface returns s extended by v. Returns ErrDuplicateVertex when v is
// already a vertex of s.
func (s Simplex) Coface(v Vertex) (Simplex, error) {
	i, found := slices.BinarySearch(s.vertices, v)
	if found {
		return Simplex{}, fmt.Errorf("%w: %d", ErrDuplicateVertex, v)
	}
	return Simplex{vertices: slices.Insert(slices.Clone(s.vertices), i, v)}, nil
}

// String renders s as {v0,v1,...}.
func (s Simplex) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.vertices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(v), 10))
	}
	b.WriteByte('}')
	return b.String()
}

// Compare orders simplices by dimension, then lexicographically by vertices.
// It returns -1, 0 or +1 and ignores weights.
func Compare(a, b Simplex) int {
	if len(a.vertices) != len(b.vertices) {
		if len(a.vertices) < len(b.vertices) {
			return -1
		}
		return 1
	}
	return slices.Compare(a.vertices, b.vertices)
}
