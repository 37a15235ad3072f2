package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Environmental data metric names
const (
	MetricNameEnvLookups      = "env_data_lookups_total"
	MetricNameEnvFetchErrors  = "env_fetch_errors_total"
	MetricNameEnvFetchSeconds = "env_fetch_duration_seconds"
)

// Notification metric names
const (
	MetricNameNotificationsSent = "notifications_sent_total"
	MetricNamePushDeliveries    = "push_deliveries_total"
)

// Scheduler metric names
const (
	MetricNameScheduledJobRuns = "scheduled_job_runs_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Environmental data metric help text
const (
	HelpTextEnvLookups      = "Environmental data lookups by kind and resolution source"
	HelpTextEnvFetchErrors  = "Failed upstream environmental data fetches"
	HelpTextEnvFetchSeconds = "Upstream environmental data fetch latency in seconds"
)

// Notification metric help text
const (
	HelpTextNotificationsSent = "Notifications dispatched by type and outcome"
	HelpTextPushDeliveries    = "Individual push deliveries by outcome"
)

// Scheduler metric help text
const (
	HelpTextScheduledJobRuns = "Scheduled job executions by job name and outcome"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelKind    = "kind"
	LabelSource  = "source"
	LabelType    = "type"
	LabelOutcome = "outcome"
	LabelJob     = "job"
)

// Label values for environmental data kinds
const (
	KindLunar   = "lunar"
	KindWeather = "weather"
)

// Label values for outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeInvalid = "invalid"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
