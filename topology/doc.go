// Package topology provides the simplex and simplicial-complex containers
// handed between the Rips expander and downstream persistence calculations.
//
// A Simplex is an ascending, duplicate-free vertex sequence plus a float64
// filtration weight. A Complex keeps simplices in a B-tree ordered by
// dimension and then lexicographically, so that
//
//   - Range(dim) and Count(dim) walk one dimension group,
//   - Find/Lookup resolve a vertex set in O(log n),
//   - Each and Simplices iterate faces before cofaces.
//
// Filtration returns the weight-sorted sequence a persistence algorithm
// expects; Validate and CheckMonotone verify closure under faces and
// weight monotonicity.
package topology
