package products

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ateliernoir/ateliernoir-backend/internal/offers"
	"github.com/ateliernoir/ateliernoir-backend/internal/pricing"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	pkgerrors "github.com/ateliernoir/ateliernoir-backend/pkg/errors"
)

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo   *Repository
	Offers offers.Service
}

// Service exposes the storefront catalog with offer-resolved pricing.
type Service interface {
	List(ctx context.Context, filter ListFilter) (ProductPage, error)
	GetDetail(ctx context.Context, id uuid.UUID) (ProductDetail, error)
	SnapshotForCart(ctx context.Context, productID uuid.UUID, size, color string) (Snapshot, error)
}

type service struct {
	repo   *Repository
	offers offers.Service
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Offers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "offers service is required")
	}
	return &service{
		repo:   params.Repo,
		offers: params.Offers,
	}, nil
}

// List returns a decorated catalog page. One offer lookup covers the whole
// page since the active set is shared.
func (s *service) List(ctx context.Context, filter ListFilter) (ProductPage, error) {
	rows, cursor, err := s.repo.List(ctx, filter)
	if err != nil {
		return ProductPage{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	items := make([]ProductSummary, 0, len(rows))
	for i := range rows {
		product := &rows[i]
		resolved, err := s.offers.ResolvePrice(ctx, product.PriceCents, nil, product.ID, nil)
		if err != nil {
			return ProductPage{}, err
		}
		items = append(items, summaryFromModel(product, resolved))
	}

	return ProductPage{Items: items, Cursor: cursor}, nil
}

// GetDetail loads one product with per-variant resolved pricing.
func (s *service) GetDetail(ctx context.Context, id uuid.UUID) (ProductDetail, error) {
	if id == uuid.Nil {
		return ProductDetail{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProductDetail{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return ProductDetail{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	resolved, err := s.offers.ResolvePrice(ctx, product.PriceCents, nil, product.ID, nil)
	if err != nil {
		return ProductDetail{}, err
	}

	detail := ProductDetail{
		ProductSummary: summaryFromModel(product, resolved),
		BodyHTML:       product.BodyHTML,
		Variants:       make([]VariantDTO, 0, len(product.Variants)),
		Images:         make([]ImageDTO, 0, len(product.Images)),
	}

	for i := range product.Variants {
		variant := &product.Variants[i]
		variantPrice, err := s.offers.ResolvePrice(ctx, product.PriceCents, variant.PriceAdjustmentCents, product.ID, &variant.ID)
		if err != nil {
			return ProductDetail{}, err
		}
		detail.Variants = append(detail.Variants, VariantDTO{
			ID:                   variant.ID,
			Size:                 variant.Size,
			Color:                variant.Color,
			PriceAdjustmentCents: variant.PriceAdjustmentCents,
			StockQty:             variant.StockQty,
			Price:                variantPrice,
		})
	}

	for _, image := range product.Images {
		detail.Images = append(detail.Images, ImageDTO{
			URL:      image.URL,
			AltText:  image.AltText,
			Position: image.Position,
		})
	}

	return detail, nil
}

// Snapshot captures the add-to-bag view of a product variant: the display
// data and the offer-resolved price at that instant.
type Snapshot struct {
	Product  *models.Product
	Variant  *models.ProductVariant
	Price    pricing.ResolvedPrice
	ImageURL *string
}

// SnapshotForCart loads the product and its size/color variant and resolves
// the current price, for callers that persist a line-item snapshot.
func (s *service) SnapshotForCart(ctx context.Context, productID uuid.UUID, size, color string) (Snapshot, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	var variant *models.ProductVariant
	for i := range product.Variants {
		v := &product.Variants[i]
		if v.Size == size && v.Color == color {
			variant = v
			break
		}
	}

	var (
		adjustment *int
		variantID  *uuid.UUID
	)
	if variant != nil {
		adjustment = variant.PriceAdjustmentCents
		variantID = &variant.ID
	}

	price, err := s.offers.ResolvePrice(ctx, product.PriceCents, adjustment, product.ID, variantID)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Product: product,
		Variant: variant,
		Price:   price,
	}
	if len(product.Images) > 0 {
		url := product.Images[0].URL
		snap.ImageURL = &url
	}
	return snap, nil
}
