package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// KitchenMetrics records ticket lifecycle activity. All methods are nil-safe
// so callers can skip wiring a registry in tests.
type KitchenMetrics struct {
	itemTransitions   *prometheus.CounterVec
	ticketTransitions *prometheus.CounterVec
	prints            prometheus.Counter
}

// NewKitchenMetrics registers the ticket metrics on the provided registerer.
func NewKitchenMetrics(reg prometheus.Registerer) *KitchenMetrics {
	if reg == nil {
		return &KitchenMetrics{}
	}
	itemTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ticket_item_transitions_total",
		Help: "Item status transitions applied, labeled by target status.",
	}, []string{"to"})
	ticketTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ticket_status_transitions_total",
		Help: "Derived ticket status changes, labeled by target status.",
	}, []string{"to"})
	prints := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_prints_total",
		Help: "Receipt print renders.",
	})
	reg.MustRegister(itemTransitions, ticketTransitions, prints)
	return &KitchenMetrics{
		itemTransitions:   itemTransitions,
		ticketTransitions: ticketTransitions,
		prints:            prints,
	}
}

// IncItemTransition increments the item transition counter for the target status.
func (k *KitchenMetrics) IncItemTransition(to string) {
	if k == nil || k.itemTransitions == nil {
		return
	}
	k.itemTransitions.WithLabelValues(normalizeLabel(to)).Inc()
}

// IncTicketTransition increments the ticket transition counter for the target status.
func (k *KitchenMetrics) IncTicketTransition(to string) {
	if k == nil || k.ticketTransitions == nil {
		return
	}
	k.ticketTransitions.WithLabelValues(normalizeLabel(to)).Inc()
}

// IncPrint increments the receipt print counter.
func (k *KitchenMetrics) IncPrint() {
	if k == nil || k.prints == nil {
		return
	}
	k.prints.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
