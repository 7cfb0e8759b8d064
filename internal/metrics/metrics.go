package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the authorization flow.
type Metrics struct {
	FlowStarts         *prometheus.CounterVec
	FlowTransitions    *prometheus.CounterVec
	FlowCancellations  prometheus.Counter
	BankSubmitDuration *prometheus.HistogramVec
}

// New creates and registers the flow collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FlowStarts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authorization_flow_starts_total",
				Help: "Total number of authorization flow starts by bank and outcome",
			},
			[]string{"bank_code", "outcome"},
		),
		FlowTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authorization_flow_transitions_total",
				Help: "Total number of flow step transitions",
			},
			[]string{"step"},
		),
		FlowCancellations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "authorization_flow_cancellations_total",
				Help: "Total number of flow cancellations",
			},
		),
		BankSubmitDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "bank_submit_duration_seconds",
				Help: "Duration of proposal submissions to external banks",
			},
			[]string{"bank_code"},
		),
	}
}
