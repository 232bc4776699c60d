package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/internal/coupons"
	"github.com/ateliernoir/ateliernoir-backend/internal/products"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
	"github.com/ateliernoir/ateliernoir-backend/pkg/logger"
	"github.com/ateliernoir/ateliernoir-backend/pkg/metrics"
)

// AddItemInput describes one add-to-bag action.
type AddItemInput struct {
	ProductID uuid.UUID
	Size      string
	Color     string
	Quantity  int
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store    *Store
	Products products.Service
	Coupons  coupons.Service
	Logger   *logger.Logger
	Metrics  *metrics.StorefrontMetrics
}

// Service owns all cart mutations. Every operation loads the blob, mutates
// in memory, and writes the whole blob back.
type Service interface {
	Get(ctx context.Context, ownerKey string) (Cart, error)
	AddItem(ctx context.Context, ownerKey string, input AddItemInput) (Cart, error)
	RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID, size, color string) (Cart, error)
	UpdateQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, size, color string, quantity int) (Cart, error)
	ApplyCoupon(ctx context.Context, ownerKey, code string) (Cart, error)
	RemoveCoupon(ctx context.Context, ownerKey string) (Cart, error)
	Clear(ctx context.Context, ownerKey string) error
	Merge(ctx context.Context, fromOwnerKey, toOwnerKey string) (Cart, error)
}

type service struct {
	store    *Store
	products products.Service
	coupons  coupons.Service
	logg     *logger.Logger
	metrics  *metrics.StorefrontMetrics
	now      func() time.Time
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "products service is required")
	}
	if params.Coupons == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupons service is required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "logger is required")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		coupons:  params.Coupons,
		logg:     params.Logger,
		metrics:  params.Metrics,
		now:      time.Now,
	}, nil
}

// Get returns the owner's cart, resetting a corrupt blob to empty.
func (s *service) Get(ctx context.Context, ownerKey string) (Cart, error) {
	if err := requireOwner(ownerKey); err != nil {
		return Cart{}, err
	}
	return s.load(ctx, ownerKey)
}

// AddItem snapshots the product at its current resolved price and merges the
// quantity into an existing line when the identity triple already exists.
// Stock is not checked here.
func (s *service) AddItem(ctx context.Context, ownerKey string, input AddItemInput) (Cart, error) {
	if err := requireOwner(ownerKey); err != nil {
		return Cart{}, err
	}
	if input.ProductID == uuid.Nil {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return Cart{}, err
	}

	size := strings.TrimSpace(input.Size)
	color := strings.TrimSpace(input.Color)

	if idx := cart.findLine(input.ProductID, size, color); idx >= 0 {
		cart.Items[idx].Quantity += quantity
		return s.save(ctx, ownerKey, cart)
	}

	snap, err := s.products.SnapshotForCart(ctx, input.ProductID, size, color)
	if err != nil {
		return Cart{}, err
	}

	line := LineItem{
		ProductID:       snap.Product.ID,
		SKU:             snap.Product.SKU,
		Title:           snap.Product.Title,
		Size:            size,
		Color:           color,
		Quantity:        quantity,
		PriceAtAddCents: snap.Price.OriginalCents,
		ImageURL:        snap.ImageURL,
		AddedAt:         s.now().UTC(),
	}
	if snap.Variant != nil {
		line.VariantID = &snap.Variant.ID
	}
	if snap.Price.FinalCents < snap.Price.OriginalCents {
		discounted := snap.Price.FinalCents
		line.DiscountedPriceCents = &discounted
	}

	cart.Items = append(cart.Items, line)
	return s.save(ctx, ownerKey, cart)
}

// RemoveItem deletes the matching line; removing an absent line is a no-op.
func (s *service) RemoveItem(ctx context.Context, ownerKey string, productID uuid.UUID, size, color string) (Cart, error) {
	if err := requireOwner(ownerKey); err != nil {
		return Cart{}, err
	}

	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return Cart{}, err
	}

	idx := cart.findLine(productID, strings.TrimSpace(size), strings.TrimSpace(color))
	if idx < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	return s.save(ctx, ownerKey, cart)
}

// UpdateQuantity replaces the quantity of the matching line. Zero or negative
// delegates to removal; a non-matching call is a no-op.
func (s *service) UpdateQuantity(ctx context.Context, ownerKey string, productID uuid.UUID, size, color string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, ownerKey, productID, size, color)
	}
	if err := requireOwner(ownerKey); err != nil {
		return Cart{}, err
	}

	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return Cart{}, err
	}

	idx := cart.findLine(productID, strings.TrimSpace(size), strings.TrimSpace(color))
	if idx < 0 {
		return cart, nil
	}

	cart.Items[idx].Quantity = quantity
	return s.save(ctx, ownerKey, cart)
}

// ApplyCoupon validates the code against the current subtotal and pins the
// applied value object to the cart. The discount is not recomputed when the
// subtotal later changes.
func (s *service) ApplyCoupon(ctx context.Context, ownerKey, code string) (Cart, error) {
	if err := requireOwner(ownerKey); err != nil {
		return Cart{}, err
	}

	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return Cart{}, err
	}

	applied, err := s.coupons.Apply(ctx, code, cart.SubtotalCents())
	if err != nil {
		return Cart{}, err
	}

	cart.Coupon = &applied
	return s.save(ctx, ownerKey, cart)
}

// RemoveCoupon clears the applied coupon without touching usage counts.
func (s *service) RemoveCoupon(ctx context.Context, ownerKey string) (Cart, error) {
	if err := requireOwner(ownerKey); err != nil {
		return Cart{}, err
	}

	cart, err := s.load(ctx, ownerKey)
	if err != nil {
		return Cart{}, err
	}
	if cart.Coupon == nil {
		return cart, nil
	}

	cart.Coupon = nil
	return s.save(ctx, ownerKey, cart)
}

// Clear drops the whole cart blob.
func (s *service) Clear(ctx context.Context, ownerKey string) error {
	if err := requireOwner(ownerKey); err != nil {
		return err
	}
	return s.store.Delete(ctx, ownerKey)
}

// Merge folds a guest cart into a customer cart after sign-in. Quantities
// merge on the identity triple; the destination coupon wins when both carts
// carry one. The source blob is deleted afterwards.
func (s *service) Merge(ctx context.Context, fromOwnerKey, toOwnerKey string) (Cart, error) {
	if err := requireOwner(fromOwnerKey); err != nil {
		return Cart{}, err
	}
	if err := requireOwner(toOwnerKey); err != nil {
		return Cart{}, err
	}
	if fromOwnerKey == toOwnerKey {
		return s.load(ctx, fromOwnerKey)
	}

	source, err := s.load(ctx, fromOwnerKey)
	if err != nil {
		return Cart{}, err
	}
	target, err := s.load(ctx, toOwnerKey)
	if err != nil {
		return Cart{}, err
	}

	for _, line := range source.Items {
		if idx := target.findLine(line.ProductID, line.Size, line.Color); idx >= 0 {
			target.Items[idx].Quantity += line.Quantity
			continue
		}
		target.Items = append(target.Items, line)
	}
	if target.Coupon == nil {
		target.Coupon = source.Coupon
	}

	merged, err := s.save(ctx, toOwnerKey, target)
	if err != nil {
		return Cart{}, err
	}
	if err := s.store.Delete(ctx, fromOwnerKey); err != nil {
		s.logg.Warn(ctx, "guest cart cleanup failed after merge")
	}
	return merged, nil
}

func (s *service) load(ctx context.Context, ownerKey string) (Cart, error) {
	cart, err := s.store.Load(ctx, ownerKey)
	if err != nil {
		if errors.Is(err, ErrCorruptCart) {
			s.logg.Warn(ctx, "cart blob corrupt, resetting to empty")
			return Cart{}, nil
		}
		return Cart{}, err
	}
	return cart, nil
}

func (s *service) save(ctx context.Context, ownerKey string, cart Cart) (Cart, error) {
	cart.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, ownerKey, cart); err != nil {
		return Cart{}, err
	}
	s.metrics.IncCartWrite()
	return cart, nil
}

func requireOwner(ownerKey string) error {
	if strings.TrimSpace(ownerKey) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart owner is required")
	}
	return nil
}
