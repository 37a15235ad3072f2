package notify

import (
	"context"
	"encoding/json"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/metrics"
)

// Sender delivers one notification to a set of push subscriptions and
// reports per-subscription outcomes. Implementations must not fail the whole
// batch on a single bad endpoint.
type Sender interface {
	Send(ctx context.Context, subs []domain.PushSubscription, title, body string, data map[string]any) domain.SendResult
}

// pushPayload is the JSON document handed to the service worker.
type pushPayload struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Icon  string         `json:"icon"`
	Badge string         `json:"badge"`
	Data  map[string]any `json:"data"`
}

const (
	notificationIcon  = "/icons/icon-192x192.png"
	notificationBadge = "/icons/badge-96x96.png"

	// pushTTL is how long the push service holds an undelivered message.
	pushTTL = 86400
)

// disabledSender is used when no VAPID key pair is configured. Jobs still run
// and write history rows, they just never reach a push service.
type disabledSender struct{}

// NewDisabledSender creates a Sender that drops every delivery.
func NewDisabledSender() Sender {
	return disabledSender{}
}

func (disabledSender) Send(ctx context.Context, subs []domain.PushSubscription, title, body string, data map[string]any) domain.SendResult {
	logger.FromContext(ctx).Warn("Push dispatch disabled, dropping notification", "subscriptions", len(subs), "title", title)
	return domain.SendResult{Failed: len(subs)}
}

// webpushSender sends Web Push messages with VAPID authentication.
type webpushSender struct {
	publicKey  string
	privateKey string
	subscriber string
}

// NewWebPushSender creates a Sender backed by the Web Push protocol.
func NewWebPushSender(vapidPublicKey, vapidPrivateKey, subscriber string) Sender {
	return &webpushSender{
		publicKey:  vapidPublicKey,
		privateKey: vapidPrivateKey,
		subscriber: subscriber,
	}
}

// Send pushes the payload to every subscription. Endpoints the push service
// reports as gone (404/410) are collected as invalid so the caller can
// deactivate them.
func (s *webpushSender) Send(ctx context.Context, subs []domain.PushSubscription, title, body string, data map[string]any) domain.SendResult {
	log := logger.FromContext(ctx)
	result := domain.SendResult{}

	payload, err := json.Marshal(pushPayload{
		Title: title,
		Body:  body,
		Icon:  notificationIcon,
		Badge: notificationBadge,
		Data:  data,
	})
	if err != nil {
		log.Error("Failed to encode push payload", "error", err)
		result.Failed = len(subs)
		return result
	}

	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256DH,
				Auth:   sub.Auth,
			},
		}, &webpush.Options{
			Subscriber:      s.subscriber,
			VAPIDPublicKey:  s.publicKey,
			VAPIDPrivateKey: s.privateKey,
			TTL:             pushTTL,
		})
		if err != nil {
			result.Failed++
			metrics.PushDeliveries.WithLabelValues(metrics.OutcomeFailure).Inc()
			log.Warn("Push delivery failed", "subscription_id", sub.ID, "error", err)
			continue
		}
		status := resp.StatusCode
		resp.Body.Close()

		switch {
		case status == 404 || status == 410:
			// The push service no longer knows this endpoint.
			result.Failed++
			result.InvalidSubscriptionIDs = append(result.InvalidSubscriptionIDs, sub.ID)
			metrics.PushDeliveries.WithLabelValues(metrics.OutcomeInvalid).Inc()
		case status >= 200 && status < 300:
			result.Successful++
			metrics.PushDeliveries.WithLabelValues(metrics.OutcomeSuccess).Inc()
		default:
			result.Failed++
			metrics.PushDeliveries.WithLabelValues(metrics.OutcomeFailure).Inc()
			log.Warn("Push service rejected delivery", "subscription_id", sub.ID, "status", status)
		}
	}
	return result
}
