package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/notify"
	"github.com/urtzih/Lorapp/internal/repository"
)

// defaultHistoryDays bounds the history query when the client passes no window.
const defaultHistoryDays = 30

// SubscribeRequest registers a browser push subscription for the acting user.
// The shape mirrors the PushSubscription object browsers hand to service
// workers.
type SubscribeRequest struct {
	Endpoint string               `json:"endpoint" validate:"required,url,max=500"`
	Keys     SubscriptionKeysBody `json:"keys" validate:"required"`
}

// SubscriptionKeysBody carries the client's encryption keys.
type SubscriptionKeysBody struct {
	P256DH string `json:"p256dh" validate:"required,max=200,excludesall=\x00\n\r\t"`
	Auth   string `json:"auth" validate:"required,max=200,excludesall=\x00\n\r\t"`
}

// SubscriptionResponse is the wire shape for a stored subscription.
type SubscriptionResponse struct {
	ID       int64  `json:"id"`
	Endpoint string `json:"endpoint"`
	Active   bool   `json:"active"`
}

// NotificationHistoryEntry is the wire shape for one dispatch record.
type NotificationHistoryEntry struct {
	ID      int64     `json:"id"`
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Success bool      `json:"success"`
	SentAt  time.Time `json:"sent_at"`
}

// NotificationHandler handles push subscription and history HTTP requests
type NotificationHandler struct {
	subs    repository.Subscription
	history repository.Notification
	sender  notify.Sender
	clock   domain.Clock
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(subs repository.Subscription, history repository.Notification, sender notify.Sender, clock domain.Clock) *NotificationHandler {
	return &NotificationHandler{subs: subs, history: history, sender: sender, clock: clock}
}

// Subscribe registers a push subscription
// @Summary Register a push subscription
// @Description Stores a browser push endpoint for the acting user. Re-registering an existing endpoint reactivates it.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body SubscribeRequest true "Subscription payload"
// @Success 201 {object} SubscriptionResponse
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/notifications/subscriptions [post]
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req SubscribeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Subscribe"); err != nil {
		return
	}

	log := logger.FromContext(r.Context())
	log.Info("Subscription registration received", "user_id", user.ID)

	sub, err := h.subs.CreateSubscription(r.Context(), domain.PushSubscription{
		UserID:   user.ID,
		Endpoint: req.Endpoint,
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
		Active:   true,
	})
	if err != nil {
		respondServiceError(w, r, ErrMsgCreateSubscriptionFailed, err)
		return
	}

	respondJSON(w, http.StatusCreated, SubscriptionResponse{
		ID:       sub.ID,
		Endpoint: sub.Endpoint,
		Active:   sub.Active,
	})
}

// Unsubscribe deactivates a push subscription
// @Summary Deactivate a push subscription
// @Description Marks the subscription inactive; historical dispatch records are kept
// @Tags notifications
// @Produce json
// @Param id path int true "Subscription ID"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Invalid subscription ID"
// @Failure 404 {object} ErrorResponse "Subscription not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/notifications/subscriptions/{id} [delete]
func (h *NotificationHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	subID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSubscriptionID)
		return
	}

	if err := h.subs.DeactivateSubscription(r.Context(), subID); err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgSubscriptionNotFoundHTTP)
			return
		}
		respondServiceError(w, r, "Deactivate subscription", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSubscriptionDeactivated})
}

// ListSubscriptions returns every subscription for the acting user
// @Summary List push subscriptions
// @Description Returns all stored subscriptions for the acting user, active and inactive
// @Tags notifications
// @Produce json
// @Success 200 {array} SubscriptionResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/notifications/subscriptions [get]
func (h *NotificationHandler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	subs, err := h.subs.GetSubscriptions(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSubscriptionsFailed, err)
		return
	}

	out := make([]SubscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, SubscriptionResponse{
			ID:       sub.ID,
			Endpoint: sub.Endpoint,
			Active:   sub.Active,
		})
	}

	respondJSON(w, http.StatusOK, out)
}

// TestPush sends a test notification to the acting user's devices
// @Summary Send a test notification
// @Description Pushes a test message to every active subscription so the user can verify delivery end to end
// @Tags notifications
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse "No active subscriptions"
// @Failure 500 {object} ErrorResponse "Delivery failed"
// @Router /api/v1/notifications/test [post]
func (h *NotificationHandler) TestPush(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	log := logger.FromContext(r.Context())

	subs, err := h.subs.GetActiveSubscriptions(r.Context(), user.ID)
	if err != nil {
		respondServiceError(w, r, "Get active subscriptions", err)
		return
	}
	if len(subs) == 0 {
		respondError(w, http.StatusNotFound, ErrMsgNoActiveSubscriptions)
		return
	}

	result := h.sender.Send(r.Context(), subs,
		"🌱 Lorapp test notification",
		"Push notifications are working ✅",
		map[string]any{
			"type":      domain.NotificationTypeTest,
			"timestamp": h.clock.Now().Format(time.RFC3339),
		})

	// Retire endpoints the push service reported dead, same as the
	// scheduled jobs do.
	for _, subID := range result.InvalidSubscriptionIDs {
		if err := h.subs.DeactivateSubscription(r.Context(), subID); err != nil {
			log.Error("Failed to deactivate dead subscription", "subscription_id", subID, "error", err)
		}
	}

	if result.Successful == 0 {
		respondError(w, http.StatusInternalServerError, ErrMsgTestPushFailed)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{
		Message: fmt.Sprintf(MsgTestPushSent, result.Successful),
	})
}

// History returns recent dispatch records for the acting user
// @Summary Notification history
// @Description Returns the dispatch log for the acting user over the last N days
// @Tags notifications
// @Produce json
// @Param days query int false "Window in days (default 30)"
// @Success 200 {array} NotificationHistoryEntry
// @Failure 400 {object} ErrorResponse "Invalid days parameter"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/notifications/history [get]
func (h *NotificationHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, ok := GetIntParam(r, w, "days", defaultHistoryDays)
	if !ok {
		return
	}
	if days < 1 {
		days = defaultHistoryDays
	}

	since := h.clock.Now().AddDate(0, 0, -days)
	records, err := h.history.GetNotificationsSince(r.Context(), user.ID, since)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetHistoryFailed, err)
		return
	}

	entries := make([]NotificationHistoryEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, NotificationHistoryEntry{
			ID:      rec.ID,
			Type:    rec.Type,
			Title:   rec.Title,
			Body:    rec.Body,
			Success: rec.Success,
			SentAt:  rec.SentAt,
		})
	}

	respondJSON(w, http.StatusOK, entries)
}
