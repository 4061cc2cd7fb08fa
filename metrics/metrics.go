package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/lvrips/covertree"
	"github.com/katalvlaran/lvrips/rips"
)

// Recorder holds the collectors fed by tree and expansion hooks.
type Recorder struct {
	// Inserts counts points placed in any cover tree.
	Inserts prometheus.Counter
	// Promotions counts root level increases.
	Promotions prometheus.Counter
	// Rebuilds counts cover tree arena rebuilds as they start.
	Rebuilds prometheus.Counter
	// InsertDepth observes the depth at which points were placed.
	InsertDepth prometheus.Histogram
	// RootLevel tracks the latest root level seen.
	RootLevel prometheus.Gauge
	// Simplices counts emitted simplices, labeled by dimension.
	Simplices *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors on reg.
// A nil reg leaves the collectors unregistered.
func New(reg prometheus.Registerer, namespace string) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		Inserts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "covertree",
			Name:      "inserts_total",
			Help:      "Total number of points inserted into cover trees",
		}),
		Promotions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "covertree",
			Name:      "promotions_total",
			Help:      "Total number of root level increases",
		}),
		Rebuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "covertree",
			Name:      "rebuilds_total",
			Help:      "Total number of cover tree rebuilds",
		}),
		InsertDepth: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "covertree",
			Name:      "insert_depth",
			Help:      "Depth below the root at which points were placed",
			Buckets:   prometheus.LinearBuckets(0, 2, 16),
		}),
		RootLevel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "covertree",
			Name:      "root_level",
			Help:      "Level of the most recently promoted root",
		}),
		Simplices: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rips",
			Name:      "simplices_total",
			Help:      "Total number of simplices emitted by expansion",
		}, []string{"dimension"}),
	}
}

// CoverTreeOptions returns the hooks feeding the tree collectors.
func (r *Recorder) CoverTreeOptions() []covertree.Option {
	return []covertree.Option{
		covertree.WithOnInsert(r.observeInsert),
		covertree.WithOnPromote(r.observePromote),
		covertree.WithOnRebuild(func(int) { r.Rebuilds.Inc() }),
	}
}

// RipsOptions returns the hooks feeding the expansion collectors, including
// the tree hooks for the proximity graph backend.
func (r *Recorder) RipsOptions() []rips.Option {
	return []rips.Option{
		rips.WithOnSimplex(r.observeSimplex),
		rips.WithCoverTreeOptions(r.CoverTreeOptions()...),
	}
}

func (r *Recorder) observeInsert(level, depth int) {
	r.Inserts.Inc()
	r.InsertDepth.Observe(float64(depth))
	if depth == 0 {
		r.RootLevel.Set(float64(level))
	}
}

func (r *Recorder) observePromote(level int) {
	r.Promotions.Inc()
	r.RootLevel.Set(float64(level))
}

func (r *Recorder) observeSimplex(dim int) {
	r.Simplices.WithLabelValues(strconv.Itoa(dim)).Inc()
}
