package cart

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"

	"github.com/ateliernoir/ateliernoir-backend/internal/coupons"
	"github.com/ateliernoir/ateliernoir-backend/internal/pricing"
	"github.com/ateliernoir/ateliernoir-backend/internal/products"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
)

type fakeBlobs struct {
	data map[string]string
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{data: make(map[string]string)}
}

func (f *fakeBlobs) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeBlobs) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeBlobs) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeBlobs) CartKey(ownerKey string) string { return "an:cart:" + ownerKey }

type stubProducts struct {
	snapshot products.Snapshot
	err      error
}

func (s *stubProducts) List(context.Context, products.ListFilter) (products.ProductPage, error) {
	return products.ProductPage{}, nil
}

func (s *stubProducts) GetDetail(context.Context, uuid.UUID) (products.ProductDetail, error) {
	return products.ProductDetail{}, nil
}

func (s *stubProducts) SnapshotForCart(context.Context, uuid.UUID, string, string) (products.Snapshot, error) {
	if s.err != nil {
		return products.Snapshot{}, s.err
	}
	return s.snapshot, nil
}

type stubCoupons struct {
	applied coupons.AppliedCoupon
	err     error
	gotSub  int
}

func (s *stubCoupons) Apply(_ context.Context, _ string, subtotalCents int) (coupons.AppliedCoupon, error) {
	s.gotSub = subtotalCents
	if s.err != nil {
		return coupons.AppliedCoupon{}, s.err
	}
	return s.applied, nil
}

func newTestService(t *testing.T, prods products.Service, coups coupons.Service) (Service, *fakeBlobs) {
	t.Helper()

	blobs := newFakeBlobs()
	store, err := NewStore(blobs, time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	svc, err := NewService(ServiceParams{
		Store:    store,
		Products: prods,
		Coupons:  coups,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, blobs
}

func snapshotFor(priceCents, finalCents int) products.Snapshot {
	product := &models.Product{
		ID:         uuid.New(),
		SKU:        "AN-TOP-001",
		Title:      "Noir Blouse",
		PriceCents: priceCents,
	}
	return products.Snapshot{
		Product: product,
		Price: pricing.ResolvedPrice{
			OriginalCents: priceCents,
			FinalCents:    finalCents,
			DiscountCents: priceCents - finalCents,
		},
	}
}

func TestAddItemMergesQuantities(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, &stubCoupons{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir", Quantity: 2}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	got, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir", Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if len(got.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", got.Items[0].Quantity)
	}
}

func TestAddItemDistinctVariantsStaySeparate(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, &stubCoupons{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir"}); err != nil {
		t.Fatalf("add M: %v", err)
	}
	got, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "L", Color: "Noir"})
	if err != nil {
		t.Fatalf("add L: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected two lines, got %d", len(got.Items))
	}
}

func TestAddItemSnapshotsDiscountedPrice(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 8000)
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, &stubCoupons{})

	got, err := svc.AddItem(context.Background(), "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	line := got.Items[0]
	if line.PriceAtAddCents != 10000 {
		t.Fatalf("expected original price snapshot, got %d", line.PriceAtAddCents)
	}
	if line.DiscountedPriceCents == nil || *line.DiscountedPriceCents != 8000 {
		t.Fatalf("expected discounted snapshot 8000, got %v", line.DiscountedPriceCents)
	}
	if got.SubtotalCents() != 8000 {
		t.Fatalf("expected subtotal 8000, got %d", got.SubtotalCents())
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, &stubCoupons{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.UpdateQuantity(ctx, "guest-1", snap.Product.ID, "M", "Noir", 0)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(got.Items))
	}
	if got.ItemCount() != 0 {
		t.Fatalf("expected item count 0, got %d", got.ItemCount())
	}
}

func TestUpdateQuantityNonMatchingIsNoop(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, &stubCoupons{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.UpdateQuantity(ctx, "guest-1", uuid.New(), "M", "Noir", 4)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 1 {
		t.Fatalf("expected untouched cart, got %+v", got.Items)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubProducts{}, &stubCoupons{})

	got, err := svc.RemoveItem(context.Background(), "guest-1", uuid.New(), "M", "Noir")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", got.Items)
	}
}

func TestApplyCouponPinsValueObject(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(40000, 40000)
	coups := &stubCoupons{applied: coupons.AppliedCoupon{Code: "SAVE20", DiscountCents: 5000}}
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, coups)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.ApplyCoupon(ctx, "guest-1", "SAVE20")
	if err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if coups.gotSub != 40000 {
		t.Fatalf("expected subtotal 40000 passed to validator, got %d", coups.gotSub)
	}
	if got.Coupon == nil || got.Coupon.DiscountCents != 5000 {
		t.Fatalf("expected pinned coupon, got %+v", got.Coupon)
	}
	if totals := got.ComputeTotals(); totals.TotalCents != 35000 {
		t.Fatalf("expected checkout total 35000, got %d", totals.TotalCents)
	}
}

func TestApplyCouponRejectionDoesNotMutate(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	coups := &stubCoupons{err: pkgerrors.New(pkgerrors.CodeNotFound, "coupon is invalid or expired")}
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, coups)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ApplyCoupon(ctx, "guest-1", "BOGUS"); err == nil {
		t.Fatal("expected rejection")
	}

	got, err := svc.Get(ctx, "guest-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Coupon != nil {
		t.Fatalf("rejected coupon must not stick, got %+v", got.Coupon)
	}
}

func TestRemoveCoupon(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	coups := &stubCoupons{applied: coupons.AppliedCoupon{Code: "NOIR10", DiscountCents: 1000}}
	svc, _ := newTestService(t, &stubProducts{snapshot: snap}, coups)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.ApplyCoupon(ctx, "guest-1", "NOIR10"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, err := svc.RemoveCoupon(ctx, "guest-1")
	if err != nil {
		t.Fatalf("remove coupon: %v", err)
	}
	if got.Coupon != nil {
		t.Fatalf("expected coupon cleared, got %+v", got.Coupon)
	}
}

func TestMergeGuestIntoCustomer(t *testing.T) {
	t.Parallel()

	snap := snapshotFor(10000, 10000)
	svc, blobs := newTestService(t, &stubProducts{snapshot: snap}, &stubCoupons{})
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "guest-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir", Quantity: 2}); err != nil {
		t.Fatalf("guest add: %v", err)
	}
	if _, err := svc.AddItem(ctx, "customer-1", AddItemInput{ProductID: snap.Product.ID, Size: "M", Color: "Noir", Quantity: 1}); err != nil {
		t.Fatalf("customer add: %v", err)
	}

	got, err := svc.Merge(ctx, "guest-1", "customer-1")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", got.Items)
	}
	if _, ok := blobs.data["an:cart:guest-1"]; ok {
		t.Fatal("expected guest blob deleted after merge")
	}
}

func TestCorruptBlobResetsToEmpty(t *testing.T) {
	t.Parallel()

	svc, blobs := newTestService(t, &stubProducts{}, &stubCoupons{})
	blobs.data["an:cart:guest-1"] = "{not json"

	got, err := svc.Get(context.Background(), "guest-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart after reset, got %+v", got.Items)
	}
}

func TestOperationsRequireOwner(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &stubProducts{}, &stubCoupons{})
	if _, err := svc.Get(context.Background(), "  "); err == nil {
		t.Fatal("expected owner validation error")
	}
	if err := svc.Clear(context.Background(), ""); err == nil {
		t.Fatal("expected owner validation error")
	}
}
