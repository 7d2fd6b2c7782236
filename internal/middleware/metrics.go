package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Application-level Prometheus metrics. HTTP request metrics come from
// fiberprometheus; these cover the concerns it cannot see.
var (
	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// ActiveWebSockets tracks currently open websocket connections.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "launchpad_active_websockets",
		Help: "Number of active websocket connections",
	})

	// WebSocketDrops counts outbound websocket messages dropped instead of
	// delivered, by reason.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_websocket_dropped_messages_total",
		Help: "Total number of outbound websocket messages dropped before delivery",
	}, []string{"reason"})

	// LikeToggles counts like/unlike intents by direction.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_like_toggles_total",
		Help: "Total number of like toggle intents",
	}, []string{"direction"})

	// FeedBuilds counts feed aggregations by sort strategy.
	FeedBuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launchpad_feed_builds_total",
		Help: "Total number of feed aggregations",
	}, []string{"strategy"})

	// PartialEnrichmentFailures counts per-item engagement fetches that
	// degraded to defaults instead of aborting the batch.
	PartialEnrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launchpad_feed_partial_failures_total",
		Help: "Total number of per-item engagement fetch failures degraded to defaults",
	})
)
