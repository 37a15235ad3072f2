package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidDateParam  = "Invalid %s parameter, expected YYYY-MM-DD"
	ErrMsgInvalidIntParam   = "Invalid %s parameter"

	// User resolution error messages
	ErrMsgMissingUserHeader = "Missing X-User-ID header"
	ErrMsgInvalidUserHeader = "Invalid X-User-ID header"
	ErrMsgUserNotFoundHTTP  = "User not found"

	// Calendar error messages
	ErrMsgGetMonthlyTasksFailed    = "Failed to retrieve monthly tasks"
	ErrMsgGetRecommendationsFailed = "Failed to retrieve recommendations"
	ErrMsgGetTransplantsFailed     = "Failed to retrieve upcoming transplants"
	ErrMsgGetExpiringLotsFailed    = "Failed to retrieve expiring lots"
	ErrMsgGetMonthOverviewFailed   = "Failed to retrieve month overview"
	ErrMsgGetAdvisoryFailed        = "Failed to retrieve planting advisory"
	ErrMsgGetYearSummaryFailed     = "Failed to retrieve year summary"

	// Notification error messages
	ErrMsgCreateSubscriptionFailed = "Failed to register subscription"
	ErrMsgInvalidSubscriptionID    = "Invalid subscription ID"
	ErrMsgSubscriptionNotFoundHTTP = "Subscription not found"
	ErrMsgGetHistoryFailed         = "Failed to retrieve notification history"
	ErrMsgGetSubscriptionsFailed   = "Failed to retrieve subscriptions"
	ErrMsgNoActiveSubscriptions    = "No active push subscriptions found. Please enable notifications first."
	ErrMsgTestPushFailed           = "Failed to send notification. Check your subscription."
)

// Success messages for API responses
// These are user-facing success messages returned in JSON responses
const (
	MsgSubscriptionCreated     = "Subscription registered successfully"
	MsgSubscriptionDeactivated = "Subscription deactivated"
	MsgLunarPrefetchDone       = "Lunar cache warmed for %d-%02d"
	MsgTestPushSent            = "Test notification sent successfully to %d device(s)"
)
