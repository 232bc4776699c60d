package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer-authored product review. One review per customer and
// product; repeat submissions replace the earlier one.
type Review struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:reviews_product_id_idx;uniqueIndex:reviews_product_customer_key"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:reviews_product_customer_key"`
	Rating     int       `gorm:"column:rating;not null"`
	Title      *string   `gorm:"column:title"`
	Body       string    `gorm:"column:body;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
