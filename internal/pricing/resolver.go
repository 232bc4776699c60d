package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// ResolvedPrice is the outcome of running the active offers against one
// product or variant. All amounts are integer cents.
type ResolvedPrice struct {
	OriginalCents int        `json:"original_cents"`
	FinalCents    int        `json:"final_cents"`
	DiscountCents int        `json:"discount_cents"`
	OfferID       *uuid.UUID `json:"offer_id,omitempty"`
	OfferTitle    *string    `json:"offer_title,omitempty"`
}

// Resolve computes the displayed price for a product or variant. The original
// price is the base price plus the variant adjustment when present. Each
// applicable offer contributes a candidate discount; the strictly largest
// candidate wins and ties keep the first offer in input order. The discount is
// clamped to the original price so the final price never goes negative; the
// same floor the coupon path applies.
func Resolve(basePriceCents int, variantAdjustmentCents *int, offers []models.Offer, productID uuid.UUID, variantID *uuid.UUID, now time.Time) ResolvedPrice {
	original := basePriceCents
	if variantAdjustmentCents != nil {
		original += *variantAdjustmentCents
	}

	resolved := ResolvedPrice{
		OriginalCents: original,
		FinalCents:    original,
	}

	var (
		best      int64
		bestOffer *models.Offer
	)
	for i := range offers {
		offer := &offers[i]
		if !applies(offer, productID, variantID, now) {
			continue
		}
		amount := discountCents(offer, original)
		if amount <= 0 {
			continue
		}
		if amount > best {
			best = amount
			bestOffer = offer
		}
	}

	if bestOffer == nil {
		return resolved
	}

	discount := int(best)
	if discount > original {
		discount = original
	}

	resolved.DiscountCents = discount
	resolved.FinalCents = original - discount
	resolved.OfferID = &bestOffer.ID
	resolved.OfferTitle = &bestOffer.Title
	return resolved
}

// applies reports whether the offer is live and scoped to the given product
// or variant. The offer window is a closed interval. A variant-scoped offer
// never applies when no variant id is supplied.
func applies(offer *models.Offer, productID uuid.UUID, variantID *uuid.UUID, now time.Time) bool {
	if !offer.IsActive {
		return false
	}
	if now.Before(offer.StartDate) || now.After(offer.EndDate) {
		return false
	}

	switch offer.AppliesTo {
	case enums.OfferScopeAll:
		return true
	case enums.OfferScopeProducts:
		return offer.ProductIDs.Contains(productID)
	case enums.OfferScopeVariants:
		if variantID == nil {
			return false
		}
		return offer.VariantIDs.Contains(*variantID)
	default:
		return false
	}
}

func discountCents(offer *models.Offer, originalCents int) int64 {
	switch offer.DiscountType {
	case enums.DiscountTypePercentage:
		return decimal.NewFromInt(int64(originalCents)).
			Mul(decimal.NewFromFloat(offer.DiscountValue)).
			Div(oneHundred).
			Round(0).
			IntPart()
	case enums.DiscountTypeFlat:
		return decimal.NewFromFloat(offer.DiscountValue).Round(0).IntPart()
	default:
		return 0
	}
}
