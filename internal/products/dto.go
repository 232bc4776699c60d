package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/internal/pricing"
	"github.com/ateliernoir/ateliernoir-backend/pkg/db/models"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

// ProductSummary is the listing-card projection with resolved pricing.
type ProductSummary struct {
	ID                  uuid.UUID             `json:"id"`
	SKU                 string                `json:"sku"`
	Title               string                `json:"title"`
	Subtitle            *string               `json:"subtitle,omitempty"`
	Category            enums.ProductCategory `json:"category"`
	Currency            enums.Currency        `json:"currency"`
	PriceCents          int                   `json:"price_cents"`
	CompareAtPriceCents *int                  `json:"compare_at_price_cents,omitempty"`
	Price               pricing.ResolvedPrice `json:"price"`
	IsFeatured          bool                  `json:"is_featured"`
	ThumbnailURL        *string               `json:"thumbnail_url,omitempty"`
	CreatedAt           time.Time             `json:"created_at"`
}

// VariantDTO is a size/color combination with its own resolved price.
type VariantDTO struct {
	ID                   uuid.UUID             `json:"id"`
	Size                 string                `json:"size"`
	Color                string                `json:"color"`
	PriceAdjustmentCents *int                  `json:"price_adjustment_cents,omitempty"`
	StockQty             int                   `json:"stock_qty"`
	Price                pricing.ResolvedPrice `json:"price"`
}

// ImageDTO is one catalog image in display order.
type ImageDTO struct {
	URL      string  `json:"url"`
	AltText  *string `json:"alt_text,omitempty"`
	Position int     `json:"position"`
}

// ProductDetail is the full product page projection.
type ProductDetail struct {
	ProductSummary
	BodyHTML *string      `json:"body_html,omitempty"`
	Variants []VariantDTO `json:"variants"`
	Images   []ImageDTO   `json:"images"`
}

// ProductPage wraps a listing page and its next cursor.
type ProductPage struct {
	Items  []ProductSummary `json:"items"`
	Cursor string           `json:"cursor"`
}

func summaryFromModel(product *models.Product, resolved pricing.ResolvedPrice) ProductSummary {
	summary := ProductSummary{
		ID:                  product.ID,
		SKU:                 product.SKU,
		Title:               product.Title,
		Subtitle:            product.Subtitle,
		Category:            product.Category,
		Currency:            product.Currency,
		PriceCents:          product.PriceCents,
		CompareAtPriceCents: product.CompareAtPriceCents,
		Price:               resolved,
		IsFeatured:          product.IsFeatured,
		CreatedAt:           product.CreatedAt,
	}
	if len(product.Images) > 0 {
		url := product.Images[0].URL
		summary.ThumbnailURL = &url
	}
	return summary
}
