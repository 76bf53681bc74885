package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weather_bot"

// Metrics holds the Prometheus collectors of the bot.
type Metrics struct {
	MessagesReceived    *prometheus.CounterVec // labels: intent
	RepliesSent         prometheus.Counter
	ReplyFailures       prometheus.Counter
	HandlingErrors      *prometheus.CounterVec // labels: kind={location_not_found,provider}
	ConversationsJoined prometheus.Counter

	// Weather provider metrics.
	ProviderRequests *prometheus.CounterVec   // labels: endpoint={geocoding,onecall}, outcome={success,error,empty}
	ProviderDuration *prometheus.HistogramVec // labels: endpoint
	GeocodeCache     *prometheus.CounterVec   // labels: result={hit,miss}
}

// NewMetrics creates all metrics and registers them with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MessagesReceived,
		m.RepliesSent,
		m.ReplyFailures,
		m.HandlingErrors,
		m.ConversationsJoined,
		m.ProviderRequests,
		m.ProviderDuration,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting returns unregistered metrics so tests can create as
// many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_received_total",
			Help:      "Inbound chat messages by parsed intent.",
		}, []string{"intent"}),
		RepliesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_sent_total",
			Help:      "Replies delivered to the chat gateway.",
		}),
		ReplyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reply_failures_total",
			Help:      "Replies the chat gateway failed to deliver.",
		}),
		HandlingErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handling_errors_total",
			Help:      "Weather resolution failures converted into error replies.",
		}, []string{"kind"}),
		ConversationsJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversations_joined_total",
			Help:      "Conversations that received a welcome message.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Weather provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
