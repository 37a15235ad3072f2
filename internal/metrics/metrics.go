package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Environmental Data Metrics
var (
	EnvLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEnvLookups,
			Help: HelpTextEnvLookups,
		},
		[]string{LabelKind, LabelSource},
	)

	EnvFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEnvFetchErrors,
			Help: HelpTextEnvFetchErrors,
		},
		[]string{LabelKind},
	)

	EnvFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameEnvFetchSeconds,
			Help:    HelpTextEnvFetchSeconds,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelKind},
	)
)

// Notification Metrics
var (
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotificationsSent,
			Help: HelpTextNotificationsSent,
		},
		[]string{LabelType, LabelOutcome},
	)

	PushDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePushDeliveries,
			Help: HelpTextPushDeliveries,
		},
		[]string{LabelOutcome},
	)
)

// Scheduler Metrics
var (
	ScheduledJobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScheduledJobRuns,
			Help: HelpTextScheduledJobRuns,
		},
		[]string{LabelJob, LabelOutcome},
	)
)
