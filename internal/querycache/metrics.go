package querycache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts cache hits and misses per entity.
type Metrics struct {
	entity string
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// NewMetrics registers hit/miss counters for one entity cache. Passing
// a nil registerer uses the default registry.
func NewMetrics(reg prometheus.Registerer, entity string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vaulta_querycache_hits_total",
		Help: "Number of cache hits for cached list collections.",
	}, []string{"entity"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vaulta_querycache_miss_total",
		Help: "Number of cache misses for cached list collections.",
	}, []string{"entity"})

	for i, collector := range []*prometheus.CounterVec{hits, misses} {
		if err := reg.Register(collector); err != nil {
			already, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			existing := already.ExistingCollector.(*prometheus.CounterVec)
			if i == 0 {
				hits = existing
			} else {
				misses = existing
			}
		}
	}

	return &Metrics{entity: entity, hits: hits, misses: misses}, nil
}

func (m *Metrics) hit() {
	if m != nil && m.hits != nil {
		m.hits.WithLabelValues(m.entity).Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil && m.misses != nil {
		m.misses.WithLabelValues(m.entity).Inc()
	}
}
