package tester

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts the calls a Tester checks
type Metrics struct {
	callsChecked *prometheus.CounterVec
	typeErrors   *prometheus.CounterVec
}

// NewMetrics creates the counters of a Tester and registers them on reg, if not nil
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		callsChecked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "calls_checked_total",
				Help:      "Total number of calls checked against their signature",
			},
			[]string{"class", "status"},
		),
		typeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "type_errors_total",
				Help:      "Total number of diagnostics reported, by kind",
			},
			[]string{"class", "code"},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.callsChecked, m.typeErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) recordCall(class string, failed bool) {
	if m == nil {
		return
	}
	status := "ok"
	if failed {
		status = "failed"
	}
	m.callsChecked.WithLabelValues(class, status).Inc()
}

func (m *Metrics) recordError(class, code string) {
	if m == nil {
		return
	}
	m.typeErrors.WithLabelValues(class, code).Inc()
}
