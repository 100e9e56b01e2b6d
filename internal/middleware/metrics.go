package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedMutations counts applied feed mutations by action.
	FeedMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minisocial_feed_mutations_total",
		Help: "Total number of applied feed mutations",
	}, []string{"action"})

	// FeedNoops counts mutations rejected as no-ops (blank text, unknown id).
	FeedNoops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minisocial_feed_noops_total",
		Help: "Total number of feed actions that had no effect",
	}, []string{"action"})

	// SnapshotWriteLatency records full-snapshot write latency per backend.
	SnapshotWriteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "minisocial_snapshot_write_latency_seconds",
		Help:    "Snapshot write latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend"})

	// SnapshotErrors counts snapshot failures by backend and operation.
	SnapshotErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minisocial_snapshot_errors_total",
		Help: "Total number of snapshot load/save failures",
	}, []string{"backend", "operation"})

	// RedisErrors counts Redis command errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "minisocial_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// ActiveWebSockets is the number of open event stream connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "minisocial_websocket_connections",
		Help: "Number of active feed event stream connections",
	})

	// EventDrops counts hub events dropped for slow subscribers.
	EventDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minisocial_event_drops_total",
		Help: "Total number of feed events dropped due to backpressure",
	})
)

// InitMetrics builds the Fiber Prometheus middleware for serviceName.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware registers the /metrics endpoint and returns the
// request-instrumenting handler.
func MetricsMiddleware(app *fiber.App, prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	prom.RegisterAt(app, "/metrics")
	return prom.Middleware
}
