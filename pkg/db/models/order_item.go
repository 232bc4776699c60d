package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one purchased line at the price paid.
type OrderItem struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID      uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	VariantID      *uuid.UUID `gorm:"column:variant_id;type:uuid"`
	Title          string     `gorm:"column:title;not null"`
	Size           string     `gorm:"column:size;not null"`
	Color          string     `gorm:"column:color;not null"`
	Quantity       int        `gorm:"column:quantity;not null"`
	UnitPriceCents int        `gorm:"column:unit_price_cents;not null"`
	LineTotalCents int        `gorm:"column:line_total_cents;not null"`
	ImageURL       *string    `gorm:"column:image_url"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
