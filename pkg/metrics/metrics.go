package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FeedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buildhub_feed_requests_total",
		Help: "Number of feed compositions served.",
	})

	Reactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "buildhub_reactions_total",
		Help: "Number of reaction mutations applied, by kind.",
	}, []string{"kind"})

	NotificationsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buildhub_notifications_written_total",
		Help: "Number of notifications durably written.",
	})

	NotificationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buildhub_notifications_failed_total",
		Help: "Number of notification writes that failed and were dropped.",
	})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "buildhub_messages_sent_total",
		Help: "Number of direct messages sent.",
	})
)

// Serve exposes /metrics on its own listener so the main API port stays
// clean. Blocks; run in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
