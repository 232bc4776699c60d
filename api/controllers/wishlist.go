package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/api/middleware"
	"github.com/ateliernoir/ateliernoir-backend/api/responses"
	"github.com/ateliernoir/ateliernoir-backend/api/validators"
	"github.com/ateliernoir/ateliernoir-backend/internal/wishlist"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

type wishlistItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

type wishlistResponse struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// WishlistFetch returns the owner's saved product ids.
func WishlistFetch(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := wishlistOwnerKey(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := svc.Get(r.Context(), ownerKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: ids})
	}
}

// WishlistAdd saves a product. The local copy always commits; the account
// copy is refreshed best effort when the caller is signed in.
func WishlistAdd(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := wishlistOwnerKey(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body wishlistItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := svc.AddItem(r.Context(), ownerKey, optionalCustomerID(r), body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: ids})
	}
}

// WishlistRemove drops a product from the wishlist.
func WishlistRemove(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := wishlistOwnerKey(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body wishlistItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := svc.RemoveItem(r.Context(), ownerKey, optionalCustomerID(r), body.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: ids})
	}
}

// WishlistSync unions the local wishlist with the account wishlist after
// sign-in. Neither side loses entries. When the guest session header is still
// present the guest set is the one reconciled, so likes collected before
// login survive the account switch.
func WishlistSync(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := wishlistOwnerKey(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if sessionID := strings.TrimSpace(r.Header.Get(middleware.SessionHeader)); sessionID != "" {
			if _, parseErr := uuid.Parse(sessionID); parseErr == nil {
				ownerKey = middleware.GuestOwnerKey(sessionID)
			}
		}

		customerID, err := customerIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ids, err := svc.Sync(r.Context(), ownerKey, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, wishlistResponse{ProductIDs: ids})
	}
}

func wishlistOwnerKey(r *http.Request, serviceReady bool) (string, error) {
	if !serviceReady {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable")
	}
	ownerKey := middleware.OwnerKeyFromContext(r.Context())
	if ownerKey == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return ownerKey, nil
}

func optionalCustomerID(r *http.Request) *uuid.UUID {
	raw := middleware.CustomerIDFromContext(r.Context())
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
