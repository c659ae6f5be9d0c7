// Package metrics exposes Prometheus instrumentation for translated outcomes.
//
// An Observer counts every Outcome a Translator produces, labelled by:
//
//   - component: the logical handler name passed to the translator
//   - class:     the translation branch (success, status, business, ...)
//   - status:    numeric status code as a string (e.g. "422")
//
// Component names should be route patterns or controller names, never raw
// URLs, to keep label cardinality bounded.
package metrics

import (
	"strconv"

	faultenvelope "github.com/blackwell-systems/fault-envelope"
	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements faultenvelope.Observer and prometheus.Collector.
type Observer struct {
	outcomes   *prometheus.CounterVec
	unexpected *prometheus.CounterVec
}

var _ faultenvelope.Observer = (*Observer)(nil)

// NewObserver creates an Observer whose metric names carry namespace as
// prefix. Register it with a prometheus.Registerer before use.
func NewObserver(namespace string) *Observer {
	return &Observer{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fault_outcomes_total",
				Help:      "Total number of translated outcomes.",
			},
			[]string{"component", "class", "status"},
		),
		unexpected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fault_unexpected_total",
				Help:      "Total number of unexpected faults, including fallback responses.",
			},
			[]string{"component"},
		),
	}
}

// ObserveOutcome records one outcome.
func (o *Observer) ObserveOutcome(component string, class faultenvelope.Class, status int) {
	o.outcomes.WithLabelValues(component, class.String(), strconv.Itoa(status)).Inc()
	if class == faultenvelope.ClassUnexpected || class == faultenvelope.ClassFallback {
		o.unexpected.WithLabelValues(component).Inc()
	}
}

// Describe implements prometheus.Collector.
func (o *Observer) Describe(ch chan<- *prometheus.Desc) {
	o.outcomes.Describe(ch)
	o.unexpected.Describe(ch)
}

// Collect implements prometheus.Collector.
func (o *Observer) Collect(ch chan<- prometheus.Metric) {
	o.outcomes.Collect(ch)
	o.unexpected.Collect(ch)
}
