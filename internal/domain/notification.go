package domain

import "time"

// Notification types written to the history log.
const (
	NotificationTypeMonthlyPlanting  = "monthly_planting"
	NotificationTypeExpirationUrgent = "expiration_urgent"
	NotificationTypeExpirationWeekly = "expiration_reminder"
	NotificationTypeTransplant       = "transplant"
	NotificationTypeTest             = "test"
)

// NotificationRecord is one dispatch attempt. The log is append-only; rows
// are written once and never mutated.
type NotificationRecord struct {
	ID      int64
	UserID  int64
	Type    string
	Title   string
	Body    string
	Success bool
	SentAt  time.Time
}

// PushSubscription is one browser push endpoint for a user.
type PushSubscription struct {
	ID       int64
	UserID   int64
	Endpoint string
	P256DH   string
	Auth     string
	Active   bool
}

// SendResult summarizes one Sender.Send call across a user's subscriptions.
// InvalidSubscriptionIDs lists subscriptions the push service reported as
// permanently gone (404/410); callers deactivate those rows.
type SendResult struct {
	Successful             int
	Failed                 int
	InvalidSubscriptionIDs []int64
}
