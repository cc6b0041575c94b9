package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/battleship-go/internal/api/apierr"
	"github.com/mcoot/battleship-go/internal/model"
)

// UserIDHeader carries the caller's user ID. Identity is issued upstream.
const UserIDHeader = "X-User-ID"

type contextKey string

const userContextKey contextKey = "user"

// Identity requires the X-User-ID header and stores it in the request context
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if userID == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, model.UserID(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID returns the caller's user ID from the request context
func GetUserID(ctx context.Context) (model.UserID, bool) {
	id, ok := ctx.Value(userContextKey).(model.UserID)
	return id, ok
}

// MustGetUserID returns the caller's user ID or panics
func MustGetUserID(ctx context.Context) model.UserID {
	id, ok := GetUserID(ctx)
	if !ok {
		panic("no user in context - identity middleware not applied?")
	}
	return id
}
