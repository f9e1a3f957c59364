package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"echo-widget/internal/brandconfig"
)

// Metrics exposes widget activity to Prometheus. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	dispatches        *prometheus.CounterVec
	configResolutions *prometheus.CounterVec
	sessions          prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "echo_widget",
			Name:      "dispatches_total",
			Help:      "Webhook dispatches by outcome.",
		}, []string{"outcome"}),
		configResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "echo_widget",
			Name:      "config_resolutions_total",
			Help:      "Widget configuration resolutions by source.",
		}, []string{"source"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "echo_widget",
			Name:      "sessions_active",
			Help:      "Widget instances currently open.",
		}),
	}
	reg.MustRegister(m.dispatches, m.configResolutions, m.sessions)
	return m
}

// DispatchFinished counts one dispatch. outcome is "ok" or a failure reason.
func (m *Metrics) DispatchFinished(outcome string) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
}

// ConfigResolved counts one configuration resolution.
func (m *Metrics) ConfigResolved(source brandconfig.Source) {
	if m == nil {
		return
	}
	m.configResolutions.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sessions.Dec()
}
