package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoadsCreated        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "load_dashboard", Name: "loads_created_total", Help: "Loads created through the API"})
	LoadsUpdated        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "load_dashboard", Name: "loads_updated_total", Help: "Loads updated through the API"})
	LoadsDeleted        = promauto.NewCounter(prometheus.CounterOpts{Namespace: "load_dashboard", Name: "loads_deleted_total", Help: "Loads deleted through the API"})
	SettlementsComputed = promauto.NewCounter(prometheus.CounterOpts{Namespace: "load_dashboard", Name: "settlements_computed_total", Help: "Settlement documents computed"})
	EventPublishErrors  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "load_dashboard", Name: "event_publish_errors_total", Help: "Load events that failed to publish"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "load_dashboard", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "load_dashboard",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
