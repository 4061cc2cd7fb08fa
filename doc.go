// Package lvrips builds filtered simplicial complexes from point clouds for
// persistent homology.
//
// The module is organized as flat packages:
//
//	metric/    Metric[P] functions: Euclidean, Manhattan, Chebyshev, Absolute, Indexed
//	covertree/ cover tree index with root promotion, invariant checks and exact queries
//	topology/  Simplex and the dimension-ordered Complex handed to persistence code
//	rips/      lower neighbors, clique expansion, weight passes, proximity graphs, Build
//	metrics/   Prometheus collectors fed by cover tree and expansion hooks
//	config/    YAML settings for a Rips build
//
// Typical use:
//
//	k, err := rips.Build(points, metric.Euclidean, 0.5, 2)
//	if err != nil { ... }
//	for _, s := range k.Filtration() { ... }
//
// Everything runs synchronously on the calling goroutine. Trees and complexes
// are not safe for concurrent mutation.
package lvrips
