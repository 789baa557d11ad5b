package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestKitchenMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewKitchenMetrics(reg)

	metrics.IncItemTransition("in_prep")
	metrics.IncItemTransition("in_prep")
	metrics.IncTicketTransition("ready")
	metrics.IncPrint()

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "ticket_item_transitions_total", "to", "in_prep"); err != nil {
		t.Fatalf("fetch item transitions: %v", err)
	} else if got != 2 {
		t.Fatalf("expected item transitions=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "ticket_status_transitions_total", "to", "ready"); err != nil {
		t.Fatalf("fetch ticket transitions: %v", err)
	} else if got != 1 {
		t.Fatalf("expected ticket transitions=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "ticket_prints_total")
	if mf == nil {
		t.Fatal("print counter not found")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected prints=1, got %f", got)
	}
}

func TestKitchenMetricsNilSafe(t *testing.T) {
	var metrics *KitchenMetrics
	metrics.IncItemTransition("delivered")
	metrics.IncTicketTransition("partial")
	metrics.IncPrint()

	empty := NewKitchenMetrics(nil)
	empty.IncItemTransition("")
	empty.IncPrint()
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
