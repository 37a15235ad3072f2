package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urtzih/Lorapp/internal/domain"
)

// SubscriptionRepository implements the push subscription repository for PostgreSQL
type SubscriptionRepository struct {
	db *pgxpool.Pool
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// GetActiveSubscriptions retrieves a user's active push subscriptions
func (r *SubscriptionRepository) GetActiveSubscriptions(ctx context.Context, userID int64) ([]domain.PushSubscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh, auth, active
		FROM push_subscriptions
		WHERE user_id = $1 AND active = TRUE
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.PushSubscription
	for rows.Next() {
		var s domain.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256DH, &s.Auth, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

// GetSubscriptions retrieves every subscription for a user, active or not
func (r *SubscriptionRepository) GetSubscriptions(ctx context.Context, userID int64) ([]domain.PushSubscription, error) {
	query := `
		SELECT id, user_id, endpoint, p256dh, auth, active
		FROM push_subscriptions
		WHERE user_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []domain.PushSubscription
	for rows.Next() {
		var s domain.PushSubscription
		if err := rows.Scan(&s.ID, &s.UserID, &s.Endpoint, &s.P256DH, &s.Auth, &s.Active); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

// CreateSubscription inserts a subscription. Re-registering an endpoint for
// the same user reactivates the existing row instead of duplicating it.
func (r *SubscriptionRepository) CreateSubscription(ctx context.Context, sub domain.PushSubscription) (*domain.PushSubscription, error) {
	query := `
		INSERT INTO push_subscriptions (user_id, endpoint, p256dh, auth, active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (user_id, endpoint) DO UPDATE
		SET p256dh = EXCLUDED.p256dh,
		    auth = EXCLUDED.auth,
		    active = TRUE
		RETURNING id, user_id, endpoint, p256dh, auth, active
	`
	var s domain.PushSubscription
	err := r.db.QueryRow(ctx, query, sub.UserID, sub.Endpoint, sub.P256DH, sub.Auth).Scan(
		&s.ID, &s.UserID, &s.Endpoint, &s.P256DH, &s.Auth, &s.Active,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &s, nil
}

// DeactivateSubscription marks a subscription inactive by primary key
func (r *SubscriptionRepository) DeactivateSubscription(ctx context.Context, subscriptionID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE push_subscriptions SET active = FALSE WHERE id = $1`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// DeactivateByEndpoint marks a user's subscription inactive by its endpoint URL
func (r *SubscriptionRepository) DeactivateByEndpoint(ctx context.Context, userID int64, endpoint string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE push_subscriptions SET active = FALSE WHERE user_id = $1 AND endpoint = $2`,
		userID, endpoint,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// NotificationRepository implements the notification history repository for PostgreSQL
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// RecordNotification appends one dispatch attempt to the history log
func (r *NotificationRepository) RecordNotification(ctx context.Context, record domain.NotificationRecord) error {
	query := `
		INSERT INTO notification_history (user_id, type, title, body, success, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		record.UserID, record.Type, record.Title, record.Body, record.Success, record.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}

// GetNotificationsSince retrieves a user's history entries at or after the cutoff
func (r *NotificationRepository) GetNotificationsSince(ctx context.Context, userID int64, since time.Time) ([]domain.NotificationRecord, error) {
	query := `
		SELECT id, user_id, type, title, body, success, sent_at
		FROM notification_history
		WHERE user_id = $1 AND sent_at >= $2
		ORDER BY sent_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query notification history: %w", err)
	}
	defer rows.Close()

	var records []domain.NotificationRecord
	for rows.Next() {
		var rec domain.NotificationRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Title, &rec.Body, &rec.Success, &rec.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return records, nil
}

// WasNotifiedSince reports whether a successful notification of the given type
// was sent to the user at or after the cutoff
func (r *NotificationRepository) WasNotifiedSince(ctx context.Context, userID int64, notificationType string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notification_history
			WHERE user_id = $1 AND type = $2 AND success = TRUE AND sent_at >= $3
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, notificationType, since).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check notification history: %w", err)
	}
	return exists, nil
}
