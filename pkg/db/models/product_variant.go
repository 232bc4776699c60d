package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is a concrete size/color combination of a product. It may
// carry its own price adjustment relative to the product base price.
type ProductVariant struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID            uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:product_variants_product_size_color_key"`
	Size                 string    `gorm:"column:size;not null;uniqueIndex:product_variants_product_size_color_key"`
	Color                string    `gorm:"column:color;not null;uniqueIndex:product_variants_product_size_color_key"`
	PriceAdjustmentCents *int      `gorm:"column:price_adjustment_cents"`
	StockQty             int       `gorm:"column:stock_qty;not null;default:0"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
