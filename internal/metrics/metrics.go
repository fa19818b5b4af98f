package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connection registry
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "festivalhub_ws_connections_active",
			Help: "Current number of live real-time connections",
		},
	)

	WSAuthentications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_ws_authentications_total",
			Help: "Authenticate attempts on the real-time channel",
		},
		[]string{"result"}, // "ok", "rejected"
	)

	WSFramesDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_ws_frames_delivered_total",
			Help: "Frames enqueued to live connections",
		},
		[]string{"scope"}, // "group", "all", "direct"
	)

	WSDeliveryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_ws_delivery_failures_total",
			Help: "Frames dropped because a connection was closed or its send buffer was full",
		},
		[]string{"scope"},
	)

	// Fan-out engine
	FanoutEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_fanout_events_total",
			Help: "Events published through the fan-out engine",
		},
		[]string{"kind"}, // "notification", "list_refresh", "status_counts", "unread_counts", "catch_up"
	)

	FanoutErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_fanout_errors_total",
			Help: "Fan-out failures that were logged and swallowed",
		},
		[]string{"kind", "stage"}, // stage: "validate", "persist", "fetch", "push"
	)

	FanoutTasksDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "festivalhub_fanout_tasks_dropped_total",
			Help: "Fan-out tasks dropped because the worker queue was full or closed",
		},
	)

	FanoutTaskDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "festivalhub_fanout_task_duration_seconds",
			Help:    "Duration of fan-out worker tasks",
			Buckets: prometheus.DefBuckets,
		},
	)

	NotificationsPersisted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_notifications_persisted_total",
			Help: "Notification records saved, by type",
		},
		[]string{"type"},
	)

	// Cross-instance bridge
	BridgeMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "festivalhub_bridge_messages_total",
			Help: "Broadcasts exchanged over the Redis bridge",
		},
		[]string{"direction", "result"}, // direction: "out", "in"
	)

	BridgeCircuitState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "festivalhub_bridge_circuit_state",
			Help: "Redis publish circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// HTTP API
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "festivalhub_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
