package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/urtzih/Lorapp/internal/domain"
	"github.com/urtzih/Lorapp/internal/logger"
	"github.com/urtzih/Lorapp/internal/repository"
)

// UserIDHeader carries the acting user's ID. Authentication happens upstream;
// the core trusts the header once the request reaches it.
const UserIDHeader = "X-User-ID"

type contextKey string

const userContextKey contextKey = "lorapp_user"

// WithUser returns a context carrying the resolved user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the user resolved by ResolveUser. The second
// return is false when the middleware did not run.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// ResolveUser is middleware that loads the user named by the X-User-ID header
// and stores it in the request context. Requests without a valid header are
// rejected before reaching the handler.
func ResolveUser(repo repository.Inventory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				log.Warn("Request missing user header", "path", r.URL.Path)
				respondError(w, http.StatusBadRequest, ErrMsgMissingUserHeader)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Warn("Request with malformed user header", "value", raw)
				respondError(w, http.StatusBadRequest, ErrMsgInvalidUserHeader)
				return
			}

			user, err := repo.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					respondError(w, http.StatusNotFound, ErrMsgUserNotFoundHTTP)
					return
				}
				log.Error("Failed to resolve user", "error", err, "user_id", userID)
				respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// requireUser fetches the resolved user from the context, responding with an
// error when the middleware is missing from the route.
func requireUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Error("User middleware missing from route", "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, ErrMsgGenericServerError)
		return nil, false
	}
	return user, true
}
