package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	OrderSourceRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shopadmin_order_source_requests_total",
		Help: "Total number of order source calls by source and outcome.",
	},
		[]string{"source", "outcome"},
	)

	OrderSourcesExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "shopadmin_order_sources_exhausted_total",
		Help: "Total number of fetches where every order source failed.",
	})

	OrdersLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "shopadmin_orders_loaded",
		Help: "Number of orders returned by the last successful fetch.",
	})
)

// Handler отдаёт метрики в формате Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
