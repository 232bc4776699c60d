package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

// Coupon is a customer-entered checkout code. Codes are stored uppercase and
// matched case-insensitively. MinOrderValueCents, MaxDiscountCents and
// UsageLimit are optional constraints; nil disables the check.
type Coupon struct {
	ID                 uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code               string             `gorm:"column:code;not null;uniqueIndex:coupons_code_key"`
	DiscountType       enums.DiscountType `gorm:"column:discount_type;type:discount_type;not null"`
	DiscountValue      float64            `gorm:"column:discount_value;type:numeric(12,2);not null"`
	MinOrderValueCents *int               `gorm:"column:min_order_value_cents"`
	MaxDiscountCents   *int               `gorm:"column:max_discount_cents"`
	UsageLimit         *int               `gorm:"column:usage_limit"`
	UsedCount          int                `gorm:"column:used_count;not null;default:0"`
	StartDate          time.Time          `gorm:"column:start_date;not null"`
	EndDate            time.Time          `gorm:"column:end_date;not null"`
	IsActive           bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
