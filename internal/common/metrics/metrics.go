// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BriefingsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefings_generated_total",
			Help: "Total number of briefings generated successfully",
		},
		[]string{"model"},
	)

	BriefingsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefings_failed_total",
			Help: "Total number of briefing requests that failed",
		},
		[]string{"error_code"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of chat-completion gateway calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		},
		[]string{"model", "outcome"},
	)

	GatewayRequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gateway_requests_active",
			Help: "Number of in-flight gateway calls",
		},
	)

	BriefingSolutions = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "briefing_solutions_count",
			Help:    "Number of solution mappings per generated briefing",
			Buckets: prometheus.LinearBuckets(0, 2, 8),
		},
	)

	ContactLinksComposed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_links_composed_total",
			Help: "Contact links composed, by channel and whether the action was enabled",
		},
		[]string{"channel", "enabled"},
	)

	AuditEventsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_recorded_total",
			Help: "Auth audit events handed to the recorder, by outcome",
		},
		[]string{"event_type", "outcome"},
	)
)
