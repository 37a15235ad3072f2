package repository

import (
	"context"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
)

// Subscription defines the interface for push subscription persistence
type Subscription interface {
	GetActiveSubscriptions(ctx context.Context, userID int64) ([]domain.PushSubscription, error)
	// GetSubscriptions returns every subscription for a user, active or not.
	GetSubscriptions(ctx context.Context, userID int64) ([]domain.PushSubscription, error)
	CreateSubscription(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error)
	DeactivateSubscription(ctx context.Context, subscriptionID int64) error
	DeactivateByEndpoint(ctx context.Context, userID int64, endpoint string) error
}

// Notification defines the interface for notification history persistence
type Notification interface {
	RecordNotification(ctx context.Context, record domain.NotificationRecord) error
	GetNotificationsSince(ctx context.Context, userID int64, since time.Time) ([]domain.NotificationRecord, error)
	WasNotifiedSince(ctx context.Context, userID int64, notificationType string, since time.Time) (bool, error)
}
