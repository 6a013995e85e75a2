package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager holds the catalog's Prometheus metrics on a private registry.
type Manager struct {
	Registry          *prometheus.Registry
	ItemsCreatedTotal prometheus.Counter
	ItemUpdatesTotal  prometheus.Counter
	ItemDeletesTotal  prometheus.Counter
	APIErrorsTotal    *prometheus.CounterVec
	RequestLatency    *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	itemsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "items_created_total",
		Help:      "Total number of catalog items created.",
	})
	itemUpdatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "item_updates_total",
		Help:      "Total number of catalog items updated.",
	})
	itemDeletesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "item_deletes_total",
		Help:      "Total number of catalog items deleted.",
	})
	apiErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "api_errors_total",
		Help:      "Total number of API errors by handler.",
	}, []string{"handler", "kind"})
	requestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		itemsCreatedTotal,
		itemUpdatesTotal,
		itemDeletesTotal,
		apiErrorsTotal,
		requestLatency,
	)

	return &Manager{
		Registry:          registry,
		ItemsCreatedTotal: itemsCreatedTotal,
		ItemUpdatesTotal:  itemUpdatesTotal,
		ItemDeletesTotal:  itemDeletesTotal,
		APIErrorsTotal:    apiErrorsTotal,
		RequestLatency:    requestLatency,
	}
}

// Handler exposes the registry for the /metrics route.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
