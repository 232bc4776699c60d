package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/metrics"
)

var oneHundred = decimal.NewFromInt(100)

// AppliedCoupon is the value object handed back on a successful apply. The
// discount is computed once, at apply time.
type AppliedCoupon struct {
	ID               uuid.UUID          `json:"id"`
	Code             string             `json:"code"`
	DiscountType     enums.DiscountType `json:"discount_type"`
	DiscountValue    float64            `json:"discount_value"`
	MaxDiscountCents *int               `json:"max_discount_cents,omitempty"`
	DiscountCents    int                `json:"discount_cents"`
}

// ServiceParams groups dependencies for the coupon service.
type ServiceParams struct {
	Repo    Repository
	Logger  *logger.Logger
	Metrics *metrics.StorefrontMetrics
}

// Service validates user-submitted coupon codes against a cart subtotal.
type Service interface {
	Apply(ctx context.Context, code string, subtotalCents int) (AppliedCoupon, error)
}

type service struct {
	repo    Repository
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
	now     func() time.Time
}

// NewService builds a coupon service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon repo is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		repo:    params.Repo,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     time.Now,
	}, nil
}

// Apply runs the validation chain in order and stops at the first failure.
// Lookup failures and missing codes collapse into the same rejection so the
// response does not reveal whether a code exists.
func (s *service) Apply(ctx context.Context, code string, subtotalCents int) (AppliedCoupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		s.metrics.IncCouponRejected("code_required")
		return AppliedCoupon{}, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}
	if subtotalCents < 0 {
		s.metrics.IncCouponRejected("invalid_subtotal")
		return AppliedCoupon{}, pkgerrors.New(pkgerrors.CodeValidation, "subtotal must not be negative")
	}

	coupon, err := s.repo.FindActiveByCode(ctx, trimmed, s.now().UTC())
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logg.Error(ctx, "coupon lookup failed", err)
		}
		s.metrics.IncCouponRejected("invalid_or_expired")
		return AppliedCoupon{}, pkgerrors.New(pkgerrors.CodeNotFound, "coupon is invalid or expired")
	}

	if coupon.MinOrderValueCents != nil && subtotalCents < *coupon.MinOrderValueCents {
		s.metrics.IncCouponRejected("below_minimum")
		return AppliedCoupon{}, pkgerrors.New(
			pkgerrors.CodeValidation,
			fmt.Sprintf("order total must be at least %d cents to use this coupon", *coupon.MinOrderValueCents),
		)
	}

	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		s.metrics.IncCouponRejected("usage_limit")
		return AppliedCoupon{}, pkgerrors.New(pkgerrors.CodeValidation, "coupon usage limit reached")
	}

	discount := s.computeDiscount(coupon, subtotalCents)
	if discount > subtotalCents {
		discount = subtotalCents
	}

	s.metrics.IncCouponApplied(coupon.Code)
	return AppliedCoupon{
		ID:               coupon.ID,
		Code:             coupon.Code,
		DiscountType:     coupon.DiscountType,
		DiscountValue:    coupon.DiscountValue,
		MaxDiscountCents: coupon.MaxDiscountCents,
		DiscountCents:    discount,
	}, nil
}

func (s *service) computeDiscount(coupon *models.Coupon, subtotalCents int) int {
	switch coupon.DiscountType {
	case enums.DiscountTypePercentage:
		amount := int(decimal.NewFromInt(int64(subtotalCents)).
			Mul(decimal.NewFromFloat(coupon.DiscountValue)).
			Div(oneHundred).
			Round(0).
			IntPart())
		if coupon.MaxDiscountCents != nil && amount > *coupon.MaxDiscountCents {
			amount = *coupon.MaxDiscountCents
		}
		return amount
	case enums.DiscountTypeFlat:
		return int(decimal.NewFromFloat(coupon.DiscountValue).Round(0).IntPart())
	default:
		return 0
	}
}
