package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hydro_requests_total",
		Help: "Websocket requests handled, by message type.",
	}, []string{"type"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hydro_errors_total",
		Help: "Websocket requests that failed, by message type.",
	}, []string{"type"})

	criticalWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hydro_critical_warnings_total",
		Help: "Critical compatibility and solubility warnings reported by distribution runs.",
	})

	connections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hydro_websocket_connections",
		Help: "Open websocket connections.",
	})
)
