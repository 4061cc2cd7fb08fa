// Package topology defines sentinel errors for simplices and complexes.
package topology

import "errors"

var (
	// ErrEmptySimplex indicates a simplex without vertices.
	ErrEmptySimplex = errors.New("topology: simplex needs at least one vertex")
	// ErrDuplicateVertex indicates a vertex listed twice in one simplex.
	ErrDuplicateVertex = errors.New("topology: duplicate vertex in simplex")
	// ErrNotClosed indicates a simplex whose face is missing from the complex.
	ErrNotClosed = errors.New("topology: complex is not closed under faces")
	// ErrNotMonotone indicates a simplex lighter than one of its faces.
	ErrNotMonotone = errors.New("topology: filtration weights are not monotone")
)
