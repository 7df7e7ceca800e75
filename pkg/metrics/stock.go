package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StockLedgerMetrics counts the outcomes of stock mutations.
type StockLedgerMetrics struct {
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
}

// NewStockLedgerMetrics registers the stock ledger metrics on the provided
// registerer. A nil registerer yields a no-op collector.
func NewStockLedgerMetrics(reg prometheus.Registerer) *StockLedgerMetrics {
	if reg == nil {
		return &StockLedgerMetrics{}
	}
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_mutations_applied",
		Help: "Stock mutations that changed a row.",
	}, []string{"movement"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_mutations_rejected",
		Help: "Stock mutations refused by a precondition.",
	}, []string{"movement"})
	reg.MustRegister(applied, rejected)
	return &StockLedgerMetrics{
		applied:  applied,
		rejected: rejected,
	}
}

// IncApplied increments the applied counter for the movement type.
func (s *StockLedgerMetrics) IncApplied(movement string) {
	if s == nil || s.applied == nil {
		return
	}
	s.applied.WithLabelValues(normalizeLabel(movement)).Inc()
}

// IncRejected increments the rejected counter for the movement type.
func (s *StockLedgerMetrics) IncRejected(movement string) {
	if s == nil || s.rejected == nil {
		return
	}
	s.rejected.WithLabelValues(normalizeLabel(movement)).Inc()
}

// CompatCacheMetrics counts compatibility cache lookups.
type CompatCacheMetrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCompatCacheMetrics registers the cache metrics on the provided
// registerer. A nil registerer yields a no-op collector.
func NewCompatCacheMetrics(reg prometheus.Registerer) *CompatCacheMetrics {
	if reg == nil {
		return &CompatCacheMetrics{}
	}
	hits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compat_cache_hits",
		Help: "Compatibility cache reads served by a fresh entry.",
	})
	misses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "compat_cache_misses",
		Help: "Compatibility cache reads that found no fresh entry.",
	})
	reg.MustRegister(hits, misses)
	return &CompatCacheMetrics{hits: hits, misses: misses}
}

// IncHit increments the hit counter.
func (c *CompatCacheMetrics) IncHit() {
	if c == nil || c.hits == nil {
		return
	}
	c.hits.Inc()
}

// IncMiss increments the miss counter.
func (c *CompatCacheMetrics) IncMiss() {
	if c == nil || c.misses == nil {
		return
	}
	c.misses.Inc()
}

func normalizeLabel(label string) string {
	if label == "" {
		return "unknown"
	}
	return label
}
