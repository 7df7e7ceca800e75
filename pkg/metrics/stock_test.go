package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStockLedgerMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewStockLedgerMetrics(reg)
	metrics.IncApplied("reserve")
	metrics.IncApplied("reserve")
	metrics.IncRejected("release")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "stock_mutations_applied", "movement", "reserve"); err != nil {
		t.Fatalf("fetch applied: %v", err)
	} else if got != 2 {
		t.Fatalf("expected applied=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_mutations_rejected", "movement", "release"); err != nil {
		t.Fatalf("fetch rejected: %v", err)
	} else if got != 1 {
		t.Fatalf("expected rejected=1, got %f", got)
	}
}

func TestCompatCacheMetricsCountsHitsAndMisses(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewCompatCacheMetrics(reg)
	metrics.IncHit()
	metrics.IncMiss()
	metrics.IncMiss()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	hit := findMetricFamily(mfs, "compat_cache_hits")
	if hit == nil || hit.GetMetric()[0].GetCounter().GetValue() != 1 {
		t.Fatalf("expected 1 cache hit, got %+v", hit)
	}
	miss := findMetricFamily(mfs, "compat_cache_misses")
	if miss == nil || miss.GetMetric()[0].GetCounter().GetValue() != 2 {
		t.Fatalf("expected 2 cache misses, got %+v", miss)
	}
}

func TestNilRegistererIsNoOp(t *testing.T) {
	ledger := NewStockLedgerMetrics(nil)
	ledger.IncApplied("reserve")
	ledger.IncRejected("reserve")

	cache := NewCompatCacheMetrics(nil)
	cache.IncHit()
	cache.IncMiss()
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
