package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/api/middleware"
	"github.com/ateliernoir/ateliernoir-backend/api/responses"
	"github.com/ateliernoir/ateliernoir-backend/api/validators"
	"github.com/ateliernoir/ateliernoir-backend/internal/cart"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

type cartItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type cartQuantityRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Size      string    `json:"size" validate:"required"`
	Color     string    `json:"color" validate:"required"`
	Quantity  int       `json:"quantity"`
}

type cartCouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// CartFetch returns the owner's cart with computed totals.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), ownerKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartAddItem adds a variant to the cart, merging onto an existing line when
// the product, size and color already match.
func CartAddItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddItem(r.Context(), ownerKey, cart.AddItemInput{
			ProductID: body.ProductID,
			Size:      body.Size,
			Color:     body.Color,
			Quantity:  body.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartUpdateQuantity sets a line's quantity; zero or below removes the line.
func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateQuantity(r.Context(), ownerKey, body.ProductID, body.Size, body.Color, body.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemoveItem deletes one line from the cart.
func CartRemoveItem(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RemoveItem(r.Context(), ownerKey, body.ProductID, body.Size, body.Color)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartApplyCoupon validates a code against the cart subtotal and pins it.
func CartApplyCoupon(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body cartCouponRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ApplyCoupon(r.Context(), ownerKey, body.Code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemoveCoupon drops the applied coupon from the cart.
func CartRemoveCoupon(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RemoveCoupon(r.Context(), ownerKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartClear empties the cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerKey, err := ownerKeyFromRequest(r, svc != nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Clear(r.Context(), ownerKey); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// CartMerge folds the guest session cart into the signed-in customer's cart.
// The guest session rides in on the session header.
func CartMerge(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID := middleware.CustomerIDFromContext(r.Context())
		if customerID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		sessionID := strings.TrimSpace(r.Header.Get(middleware.SessionHeader))
		if _, err := uuid.Parse(sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "guest session header required"))
			return
		}

		result, err := svc.Merge(r.Context(), middleware.GuestOwnerKey(sessionID), middleware.CustomerOwnerKey(customerID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func ownerKeyFromRequest(r *http.Request, serviceReady bool) (string, error) {
	if !serviceReady {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable")
	}
	ownerKey := middleware.OwnerKeyFromContext(r.Context())
	if ownerKey == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return ownerKey, nil
}
