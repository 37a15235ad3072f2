// Package notify composes and dispatches the scheduled push notifications:
// monthly sowing suggestions, seed expiry alerts and transplant reminders.
// Every run fans out over all opted-in users with per-user failure isolation.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urtzih/Lorapp/internal/calendar"
	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/metrics"
	"github.com/urtzih/Lorapp/internal/repository"
)

const (
	// expirationUrgentDays triggers the daily urgent alert.
	expirationUrgentDays = 7
	// expirationDigestDays feeds the weekly digest.
	expirationDigestDays = 30
	// transplantWindowDays is the reminder lookahead for transplants.
	transplantWindowDays = 3

	// maxListedLots caps how many lot names a monthly body spells out.
	maxListedLots = 5
)

// Service runs the recurring notification jobs.
type Service interface {
	RunMonthlyPlanting(ctx context.Context) error
	RunExpirationAlerts(ctx context.Context) error
	RunTransplantReminders(ctx context.Context) error
}

type service struct {
	inventory repository.Inventory
	subs      repository.Subscription
	history   repository.Notification
	engine    calendar.Engine
	sender    Sender
	clock     domain.Clock
}

// NewService creates a new notification Service
func NewService(inventory repository.Inventory, subs repository.Subscription, history repository.Notification, engine calendar.Engine, sender Sender, clock domain.Clock) Service {
	return &service{
		inventory: inventory,
		subs:      subs,
		history:   history,
		engine:    engine,
		sender:    sender,
		clock:     clock,
	}
}

// RunMonthlyPlanting tells each user what their inventory lets them sow this
// month. Users with nothing sowable or no active subscriptions are skipped.
func (s *service) RunMonthlyPlanting(ctx context.Context) error {
	return s.forEachUser(ctx, "monthly planting", func(ctx context.Context, user *domain.User) error {
		recs, err := s.engine.CurrentMonthRecommendations(ctx, user)
		if err != nil {
			return fmt.Errorf("recommendations: %w", err)
		}
		if len(recs) == 0 {
			return nil
		}

		subs, err := s.activeSubs(ctx, user.ID)
		if err != nil || len(subs) == 0 {
			return err
		}

		names := make([]string, 0, maxListedLots)
		for i, r := range recs {
			if i == maxListedLots {
				break
			}
			names = append(names, r.LotName)
		}
		list := strings.Join(names, ", ")
		if len(recs) > maxListedLots {
			list += fmt.Sprintf(" and %d more", len(recs)-maxListedLots)
		}

		title := fmt.Sprintf("🌱 %s sowings", s.clock.Now().Month().String())
		body := fmt.Sprintf("This month you can sow: %s", list)

		s.dispatch(ctx, user.ID, domain.NotificationTypeMonthlyPlanting, subs, title, body,
			map[string]any{"type": domain.NotificationTypeMonthlyPlanting, "recommendations": recs})
		return nil
	})
}

// RunExpirationAlerts keeps the two-tier cadence: lots within 7 days of
// expiry alert every day, the broader 30-day digest goes out on Mondays only.
func (s *service) RunExpirationAlerts(ctx context.Context) error {
	return s.forEachUser(ctx, "expiration alerts", func(ctx context.Context, user *domain.User) error {
		expiringSoon, err := s.engine.ExpiringLots(ctx, user, expirationDigestDays)
		if err != nil {
			return fmt.Errorf("expiring lots: %w", err)
		}
		if len(expiringSoon) == 0 {
			return nil
		}
		urgent := []domain.ExpiringLot{}
		for _, lot := range expiringSoon {
			if lot.DaysUntil <= expirationUrgentDays {
				urgent = append(urgent, lot)
			}
		}

		subs, err := s.activeSubs(ctx, user.ID)
		if err != nil || len(subs) == 0 {
			return err
		}

		switch {
		case len(urgent) > 0:
			lot := urgent[0]
			title := "⚠️ Seed lot about to expire"
			body := fmt.Sprintf("%s expires in %d days", lot.LotName, lot.DaysUntil)
			s.dispatch(ctx, user.ID, domain.NotificationTypeExpirationUrgent, subs, title, body,
				map[string]any{"type": domain.NotificationTypeExpirationUrgent, "lot": lot})

		case s.clock.Now().Weekday() == time.Monday:
			title := "📅 Seed lots expiring soon"
			body := fmt.Sprintf("You have %d seed lot(s) expiring soon", len(expiringSoon))
			s.dispatch(ctx, user.ID, domain.NotificationTypeExpirationWeekly, subs, title, body,
				map[string]any{"type": domain.NotificationTypeExpirationWeekly, "lots": expiringSoon})
		}
		return nil
	})
}

// RunTransplantReminders notifies about plantings whose transplant date falls
// within the next three days, one message per planting.
func (s *service) RunTransplantReminders(ctx context.Context) error {
	return s.forEachUser(ctx, "transplant reminders", func(ctx context.Context, user *domain.User) error {
		upcoming, err := s.engine.UpcomingTransplants(ctx, user, transplantWindowDays)
		if err != nil {
			return fmt.Errorf("upcoming transplants: %w", err)
		}
		if len(upcoming) == 0 {
			return nil
		}

		subs, err := s.activeSubs(ctx, user.ID)
		if err != nil || len(subs) == 0 {
			return err
		}

		for _, item := range upcoming {
			title := "🌿 Time to transplant"
			body := fmt.Sprintf("Transplant %s in %d days", item.LotName, item.DaysUntil)
			if item.DaysUntil == 0 {
				body = fmt.Sprintf("Transplant %s today", item.LotName)
			}
			s.dispatch(ctx, user.ID, domain.NotificationTypeTransplant, subs, title, body,
				map[string]any{"type": domain.NotificationTypeTransplant, "planting": item})
		}
		return nil
	})
}

// forEachUser runs one job body over every opted-in user sequentially. A
// panic or error in one user's pass is logged and the loop moves on, so a
// single bad dataset cannot starve everyone else.
func (s *service) forEachUser(ctx context.Context, jobName string, fn func(context.Context, *domain.User) error) error {
	log := logger.FromContext(ctx)
	log.Info("Notification job started", "job", jobName)

	users, err := s.inventory.GetUsersWithNotificationsEnabled(ctx)
	if err != nil {
		metrics.ScheduledJobRuns.WithLabelValues(jobName, metrics.OutcomeFailure).Inc()
		return fmt.Errorf("failed to list users: %w", err)
	}

	for i := range users {
		user := &users[i]
		s.runIsolated(ctx, jobName, user, fn)
	}

	metrics.ScheduledJobRuns.WithLabelValues(jobName, metrics.OutcomeSuccess).Inc()
	log.Info("Notification job finished", "job", jobName, "users", len(users))
	return nil
}

func (s *service) runIsolated(ctx context.Context, jobName string, user *domain.User, fn func(context.Context, *domain.User) error) {
	log := logger.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Notification job panicked for user", "job", jobName, "user_id", user.ID, "panic", r)
		}
	}()
	if err := fn(ctx, user); err != nil {
		log.Error("Notification job failed for user", "job", jobName, "user_id", user.ID, "error", err)
	}
}

func (s *service) activeSubs(ctx context.Context, userID int64) ([]domain.PushSubscription, error) {
	subs, err := s.subs.GetActiveSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("subscriptions: %w", err)
	}
	return subs, nil
}

// dispatch sends, logs the attempt to the history table, and retires
// subscriptions the push service reported dead.
func (s *service) dispatch(ctx context.Context, userID int64, notifType string, subs []domain.PushSubscription, title, body string, data map[string]any) {
	log := logger.FromContext(ctx)

	result := s.sender.Send(ctx, subs, title, body, data)

	outcome := metrics.OutcomeSuccess
	if result.Successful == 0 {
		outcome = metrics.OutcomeFailure
	}
	metrics.NotificationsSent.WithLabelValues(notifType, outcome).Inc()

	record := domain.NotificationRecord{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Body:    body,
		Success: result.Successful > 0,
		SentAt:  s.clock.Now(),
	}
	if err := s.history.RecordNotification(ctx, record); err != nil {
		log.Error("Failed to record notification history", "user_id", userID, "error", err)
	}

	for _, subID := range result.InvalidSubscriptionIDs {
		if err := s.subs.DeactivateSubscription(ctx, subID); err != nil {
			log.Error("Failed to deactivate dead subscription", "subscription_id", subID, "error", err)
		} else {
			log.Info("Deactivated dead push subscription", "subscription_id", subID, "user_id", userID)
		}
	}
}
