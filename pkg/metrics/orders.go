package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records counters for the order write path.
type OrderMetrics struct {
	created *prometheus.CounterVec
	facts   *prometheus.CounterVec
	failed  *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders committed successfully.",
	}, []string{"status"})
	facts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "outbox_facts_total",
		Help: "Outbox facts appended alongside aggregates.",
	}, []string{"event_type"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_create_failures_total",
		Help: "Order creation attempts that did not commit.",
	}, []string{"reason"})
	reg.MustRegister(created, facts, failed)
	return &OrderMetrics{
		created: created,
		facts:   facts,
		failed:  failed,
	}
}

// IncCreated increments the created counter for the given order status.
func (m *OrderMetrics) IncCreated(status string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncFact increments the fact counter for the given event type.
func (m *OrderMetrics) IncFact(eventType string) {
	if m == nil || m.facts == nil {
		return
	}
	m.facts.WithLabelValues(normalizeLabel(eventType)).Inc()
}

// IncFailure increments the failure counter for the given reason.
func (m *OrderMetrics) IncFailure(reason string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
