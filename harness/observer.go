package harness

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/theflywheel/chainhash"
)

// Observer is notified after every timed search
type Observer interface {
	ObserveSearch(key string, elapsed time.Duration, probes int)
}

type nopObserver struct{}

func (nopObserver) ObserveSearch(string, time.Duration, int) {}

// PromObserver exports search latency and probe counts as prometheus metrics
type PromObserver struct {
	latency  prometheus.Histogram
	probes   prometheus.Histogram
	searches prometheus.Counter
	misses   prometheus.Counter
}

// NewPromObserver creates the collectors and registers them on reg
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	o := &PromObserver{
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chainhash",
			Name:      "search_duration_seconds",
			Help:      "Time taken by a single table search.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),
		probes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "chainhash",
			Name:      "search_probes",
			Help:      "Comparisons made by successful searches.",
			Buckets:   []float64{1, 2, 3, 4, 5, 8, 13, 21, 34, 55},
		}),
		searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chainhash",
			Name:      "searches_total",
			Help:      "Searches performed.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chainhash",
			Name:      "search_misses_total",
			Help:      "Searches that did not find their key.",
		}),
	}

	for _, c := range []prometheus.Collector{o.latency, o.probes, o.searches, o.misses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ObserveSearch records one search
func (o *PromObserver) ObserveSearch(_ string, elapsed time.Duration, probes int) {
	o.searches.Inc()
	o.latency.Observe(elapsed.Seconds())
	if probes == chainhash.NotFound {
		o.misses.Inc()
		return
	}
	o.probes.Observe(float64(probes))
}
