package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

// SessionHeader carries the anonymous storefront session identifier. The
// frontend persists it in local storage and replays it on every request.
const SessionHeader = "X-AN-Session"

const (
	customerKeyPrefix = "customer:"
	guestKeyPrefix    = "guest:"
)

// CustomerOwnerKey builds the cart/wishlist owner key for a signed-in customer.
func CustomerOwnerKey(customerID string) string {
	return customerKeyPrefix + customerID
}

// GuestOwnerKey builds the cart/wishlist owner key for an anonymous session.
func GuestOwnerKey(sessionID string) string {
	return guestKeyPrefix + sessionID
}

// SessionContext seeds the owner key used by cart and wishlist storage. A
// signed-in customer owns "customer:<id>"; anyone else gets a guest key from
// the session header, minted on first contact and echoed back so the frontend
// can persist it.
func SessionContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if customerID := CustomerIDFromContext(ctx); customerID != "" {
				ctx = context.WithValue(ctx, ctxOwnerKey, CustomerOwnerKey(customerID))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}
			w.Header().Set(SessionHeader, sessionID)

			ctx = context.WithValue(ctx, ctxSessionID, sessionID)
			ctx = context.WithValue(ctx, ctxOwnerKey, GuestOwnerKey(sessionID))
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
