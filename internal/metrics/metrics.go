package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec
	RejectionsTotal    *prometheus.CounterVec
	TradesTotal        prometheus.Counter
	TradedQuantity     prometheus.Counter
	ActivationsTotal   prometheus.Counter
	SnapshotOffset     prometheus.Gauge
	LastTradePrice     prometheus.Gauge
	EventsPublished    prometheus.Counter
	ProcessingFailures prometheus.Counter
}

// New registers the engine collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the engine collectors on the given registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "requests_total",
			Help:      "Requests processed, by request kind.",
		}, []string{"kind"}),
		RejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "rejections_total",
			Help:      "Rejected requests, by outcome.",
		}, []string{"outcome"}),
		TradesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "trades_total",
			Help:      "Trades executed.",
		}),
		TradedQuantity: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "traded_quantity_total",
			Help:      "Total quantity traded.",
		}),
		ActivationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "stop_activations_total",
			Help:      "Stop-limit orders activated.",
		}),
		SnapshotOffset: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "matching_engine",
			Name:      "snapshot_offset",
			Help:      "Stream offset of the last stored snapshot.",
		}),
		LastTradePrice: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "matching_engine",
			Name:      "last_trade_price",
			Help:      "Reference price after the last trade.",
		}),
		EventsPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "events_published_total",
			Help:      "Events written to the event stream.",
		}),
		ProcessingFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "matching_engine",
			Name:      "processing_failures_total",
			Help:      "Requests that failed outside the matching outcome taxonomy.",
		}),
	}
}

// Handler returns the HTTP handler exposing the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
