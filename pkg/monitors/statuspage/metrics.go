package statuspage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "statuspage_mirror"

// Metrics for incident checks and message delivery.
var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "checks_total",
			Help:      "Total incident checks by result",
		},
		[]string{"result"},
	)

	checkDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "check_duration_seconds",
			Help:      "Duration of the incident fetch of a check",
			Buckets:   prometheus.DefBuckets,
		},
	)

	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "messages_total",
			Help:      "Total message operations by action and result",
		},
		[]string{"action", "result"},
	)

	incidentsFetched = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "incidents_fetched",
			Help:      "Number of incidents returned by the last successful fetch",
		},
	)
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)
