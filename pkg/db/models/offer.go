package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/ateliernoir/ateliernoir-backend/pkg/db/types"
	"github.com/ateliernoir/ateliernoir-backend/pkg/enums"
)

// Offer is a merchandising discount applied automatically to listed prices.
// DiscountValue is a percent for percentage offers and a cent amount for flat
// offers. Scope arrays are consulted only for the matching AppliesTo value.
type Offer struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title         string             `gorm:"column:title;not null"`
	DiscountType  enums.DiscountType `gorm:"column:discount_type;type:discount_type;not null"`
	DiscountValue float64            `gorm:"column:discount_value;type:numeric(12,2);not null"`
	AppliesTo     enums.OfferScope   `gorm:"column:applies_to;type:offer_scope;not null;default:'all'"`
	ProductIDs    dbtypes.UUIDArray  `gorm:"column:product_ids;type:uuid[]"`
	VariantIDs    dbtypes.UUIDArray  `gorm:"column:variant_ids;type:uuid[]"`
	StartDate     time.Time          `gorm:"column:start_date;not null"`
	EndDate       time.Time          `gorm:"column:end_date;not null"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
