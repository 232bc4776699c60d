package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	dbtypes "github.com/ateliernoir/ateliernoir-backend/pkg/db/types"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

func activeOffer(title string, dt enums.DiscountType, value float64, now time.Time) models.Offer {
	return models.Offer{
		ID:            uuid.New(),
		Title:         title,
		DiscountType:  dt,
		DiscountValue: value,
		AppliesTo:     enums.OfferScopeAll,
		StartDate:     now.Add(-time.Hour),
		EndDate:       now.Add(time.Hour),
		IsActive:      true,
	}
}

func TestResolveNoOffers(t *testing.T) {
	t.Parallel()

	got := Resolve(12000, nil, nil, uuid.New(), nil, time.Now())
	if got.OriginalCents != 12000 || got.FinalCents != 12000 || got.DiscountCents != 0 {
		t.Fatalf("unexpected result %+v", got)
	}
	if got.OfferID != nil || got.OfferTitle != nil {
		t.Fatalf("expected no offer attribution, got %+v", got)
	}
}

func TestResolveVariantAdjustment(t *testing.T) {
	t.Parallel()

	adj := 500
	got := Resolve(10000, &adj, nil, uuid.New(), nil, time.Now())
	if got.OriginalCents != 10500 {
		t.Fatalf("expected adjusted original 10500, got %d", got.OriginalCents)
	}
}

func TestResolvePicksLargestDiscount(t *testing.T) {
	t.Parallel()

	now := time.Now()
	offers := []models.Offer{
		activeOffer("Ten Percent", enums.DiscountTypePercentage, 10, now),
		activeOffer("Flat 1500", enums.DiscountTypeFlat, 1500, now),
		activeOffer("Five Percent", enums.DiscountTypePercentage, 5, now),
	}

	got := Resolve(10000, nil, offers, uuid.New(), nil, now)
	if got.DiscountCents != 1500 {
		t.Fatalf("expected 1500 discount, got %d", got.DiscountCents)
	}
	if got.FinalCents != 8500 {
		t.Fatalf("expected final 8500, got %d", got.FinalCents)
	}
	if got.OfferTitle == nil || *got.OfferTitle != "Flat 1500" {
		t.Fatalf("expected Flat 1500 to win, got %+v", got.OfferTitle)
	}
}

func TestResolveTieKeepsFirst(t *testing.T) {
	t.Parallel()

	now := time.Now()
	offers := []models.Offer{
		activeOffer("First Ten", enums.DiscountTypePercentage, 10, now),
		activeOffer("Flat Thousand", enums.DiscountTypeFlat, 1000, now),
	}

	got := Resolve(10000, nil, offers, uuid.New(), nil, now)
	if got.DiscountCents != 1000 {
		t.Fatalf("expected 1000 discount, got %d", got.DiscountCents)
	}
	if got.OfferTitle == nil || *got.OfferTitle != "First Ten" {
		t.Fatalf("tie should keep first offer, got %+v", got.OfferTitle)
	}
}

func TestResolveScopeMatching(t *testing.T) {
	t.Parallel()

	now := time.Now()
	productID := uuid.New()
	variantID := uuid.New()

	productOffer := activeOffer("Product Scoped", enums.DiscountTypePercentage, 20, now)
	productOffer.AppliesTo = enums.OfferScopeProducts
	productOffer.ProductIDs = dbtypes.UUIDArray{productID}

	variantOffer := activeOffer("Variant Scoped", enums.DiscountTypePercentage, 30, now)
	variantOffer.AppliesTo = enums.OfferScopeVariants
	variantOffer.VariantIDs = dbtypes.UUIDArray{variantID}

	offers := []models.Offer{productOffer, variantOffer}

	// Without a variant id the variant-scoped offer never applies.
	got := Resolve(10000, nil, offers, productID, nil, now)
	if got.DiscountCents != 2000 {
		t.Fatalf("expected product offer discount 2000, got %d", got.DiscountCents)
	}

	got = Resolve(10000, nil, offers, productID, &variantID, now)
	if got.DiscountCents != 3000 {
		t.Fatalf("expected variant offer discount 3000, got %d", got.DiscountCents)
	}

	got = Resolve(10000, nil, offers, uuid.New(), nil, now)
	if got.DiscountCents != 0 {
		t.Fatalf("unscoped product should get no discount, got %d", got.DiscountCents)
	}
}

func TestResolveWindowIsClosedInterval(t *testing.T) {
	t.Parallel()

	now := time.Now()
	offer := activeOffer("Boundary", enums.DiscountTypePercentage, 10, now)
	offer.StartDate = now
	offer.EndDate = now

	got := Resolve(10000, nil, []models.Offer{offer}, uuid.New(), nil, now)
	if got.DiscountCents != 1000 {
		t.Fatalf("boundary instants should be valid, got %d", got.DiscountCents)
	}

	got = Resolve(10000, nil, []models.Offer{offer}, uuid.New(), nil, now.Add(time.Second))
	if got.DiscountCents != 0 {
		t.Fatalf("offer past end date should not apply, got %d", got.DiscountCents)
	}
}

func TestResolveInactiveOfferSkipped(t *testing.T) {
	t.Parallel()

	now := time.Now()
	offer := activeOffer("Disabled", enums.DiscountTypePercentage, 50, now)
	offer.IsActive = false

	got := Resolve(10000, nil, []models.Offer{offer}, uuid.New(), nil, now)
	if got.DiscountCents != 0 {
		t.Fatalf("inactive offer should not apply, got %d", got.DiscountCents)
	}
}

func TestResolveClampsFlatDiscountToPrice(t *testing.T) {
	t.Parallel()

	now := time.Now()
	offer := activeOffer("Oversized Flat", enums.DiscountTypeFlat, 5000, now)

	got := Resolve(300, nil, []models.Offer{offer}, uuid.New(), nil, now)
	if got.DiscountCents != 300 {
		t.Fatalf("expected discount clamped to 300, got %d", got.DiscountCents)
	}
	if got.FinalCents != 0 {
		t.Fatalf("expected final price 0, got %d", got.FinalCents)
	}
}

func TestResolvePercentageRounding(t *testing.T) {
	t.Parallel()

	now := time.Now()
	offer := activeOffer("Third Off", enums.DiscountTypePercentage, 33.33, now)

	got := Resolve(9999, nil, []models.Offer{offer}, uuid.New(), nil, now)
	// 9999 * 33.33% = 3332.6667, rounds to 3333.
	if got.DiscountCents != 3333 {
		t.Fatalf("expected rounded discount 3333, got %d", got.DiscountCents)
	}
}
