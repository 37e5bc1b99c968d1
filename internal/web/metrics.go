package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/provide-io/erlc/pkg/hub"
)

type metrics struct {
	events   *prometheus.CounterVec
	selected prometheus.Gauge
	requests *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erlc",
			Name:      "level_changed_total",
			Help:      "selectedLevelChanged dispatches by originating region.",
		}, []string{"origin"}),
		selected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "erlc",
			Name:      "selected_level",
			Help:      "Currently selected error_reporting level.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "erlc",
			Name:      "http_requests_total",
			Help:      "API requests by route and status code.",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(m.events, m.selected, m.requests)
	return m
}

func (m *metrics) observe(ev hub.Event) {
	m.events.WithLabelValues(ev.Origin.String()).Inc()
	m.selected.Set(float64(ev.State.SelectedLevel))
}
