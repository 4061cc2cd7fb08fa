// Package metrics exposes Prometheus collectors for cover tree and Rips
// expansion activity.
//
// A Recorder registers its collectors on a caller-supplied
// prometheus.Registerer and plugs into both packages through their hook
// options:
//
//	rec := metrics.New(prometheus.DefaultRegisterer, "lvrips")
//	tree, _ := covertree.New(m, rec.CoverTreeOptions()...)
//	k, _ := rips.Build(points, m, eps, 2, rec.RipsOptions()...)
package metrics
