package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

// Order captures a placed storefront order and its fulfillment progress.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber    string            `gorm:"column:order_number;not null;uniqueIndex:orders_order_number_key"`
	CustomerID     *uuid.UUID        `gorm:"column:customer_id;type:uuid;index:orders_customer_id_idx"`
	Email          string            `gorm:"column:email;not null"`
	Status         enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'placed'"`
	Currency       enums.Currency    `gorm:"column:currency;not null;default:'USD'"`
	SubtotalCents  int               `gorm:"column:subtotal_cents;not null;default:0"`
	DiscountCents  int               `gorm:"column:discount_cents;not null;default:0"`
	TotalCents     int               `gorm:"column:total_cents;not null;default:0"`
	CouponCode     *string           `gorm:"column:coupon_code"`
	PlacedAt       time.Time         `gorm:"column:placed_at;not null"`
	ConfirmedAt    *time.Time        `gorm:"column:confirmed_at"`
	ShippedAt      *time.Time        `gorm:"column:shipped_at"`
	DeliveredAt    *time.Time        `gorm:"column:delivered_at"`
	CancelledAt    *time.Time        `gorm:"column:cancelled_at"`
	TrackingNumber *string           `gorm:"column:tracking_number"`
	Items          []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
