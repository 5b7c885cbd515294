package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedAssemblyLatency records the time feed page assembly takes by mode.
	FeedAssemblyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "socialconnect_feed_assembly_latency_seconds",
		Help:    "Feed page assembly latency in seconds by feed mode",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	// CacheRequests counts cache lookups by key prefix and outcome.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialconnect_cache_requests_total",
		Help: "Total cache lookups by key prefix and outcome (hit or miss)",
	}, []string{"prefix", "outcome"})

	// NotificationsCreated counts notifications created by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialconnect_notifications_created_total",
		Help: "Total notifications created by type",
	}, []string{"type"})

	// ModerationActions counts admin moderation actions by action type.
	ModerationActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialconnect_moderation_actions_total",
		Help: "Total admin moderation actions by action",
	}, []string{"action"})
)

// ObserveFeedAssembly records feed assembly latency for a mode.
func ObserveFeedAssembly(mode string, start time.Time) {
	FeedAssemblyLatency.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// RecordCacheHit increments the cache hit counter for a key prefix.
func RecordCacheHit(prefix string) {
	CacheRequests.WithLabelValues(prefix, "hit").Inc()
}

// RecordCacheMiss increments the cache miss counter for a key prefix.
func RecordCacheMiss(prefix string) {
	CacheRequests.WithLabelValues(prefix, "miss").Inc()
}
