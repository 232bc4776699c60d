package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

// Product represents a catalog listing shown on the storefront.
type Product struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU                 string                `gorm:"column:sku;not null;uniqueIndex:products_sku_key"`
	Title               string                `gorm:"column:title;not null"`
	Subtitle            *string               `gorm:"column:subtitle"`
	BodyHTML            *string               `gorm:"column:body_html"`
	Category            enums.ProductCategory `gorm:"column:category;type:category;not null"`
	PriceCents          int                   `gorm:"column:price_cents;not null"`
	CompareAtPriceCents *int                  `gorm:"column:compare_at_price_cents"`
	Currency            enums.Currency        `gorm:"column:currency;not null;default:'USD'"`
	IsActive            bool                  `gorm:"column:is_active;not null;default:true"`
	IsFeatured          bool                  `gorm:"column:is_featured;not null;default:false"`
	Variants            []ProductVariant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Images              []ProductImage        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
