// Package rips builds Vietoris-Rips complexes: the clique complex of an
// epsilon-neighborhood graph, weighted for persistent homology.
//
// What
//
//   - LowerNeighbors indexes a 1-skeleton by lower (smaller) neighbors.
//   - Expand synthesizes every clique up to a dimension bound using
//     Zomorodian's incremental algorithm ("Fast Construction of the
//     Vietoris-Rips Complex", 2010). Each clique is emitted exactly once.
//   - AssignMaximumWeight propagates face weights upwards so that the
//     filtration is monotone; AssignData, AssignMaximumData and
//     AssignMinimumData derive weights from per-vertex values.
//   - ProximityGraph and FromGraph turn a point set into a gonum weighted
//     graph and that graph into a 1-skeleton; Build chains everything.
//
// Weights
//
// Expand copies the weights of vertices and edges from its input and leaves
// higher simplices at 0. Run AssignMaximumWeight(k, 1) afterwards; Build does
// so. That pass is the single source of weights above dimension 1.
//
// Neighbor search
//
// ProximityGraph indexes points in a covertree.Tree over point indices by
// default and answers one range query per stored point. WithBruteForce
// switches to the quadratic pairwise scan, which is faster for a few hundred
// points or fewer.
//
// Concurrency
//
// Calls hold no shared state and may run in parallel on distinct inputs.
// A topology.Complex must not be mutated while a call reads it.
package rips
