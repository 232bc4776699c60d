package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/ateliernoir/ateliernoir-backend/internal/coupons"
)

// LineItem is one cart entry. Identity is the (product, size, color) triple;
// adding the same triple again merges quantities instead of duplicating.
type LineItem struct {
	ProductID            uuid.UUID  `json:"product_id"`
	VariantID            *uuid.UUID `json:"variant_id,omitempty"`
	SKU                  string     `json:"sku"`
	Title                string     `json:"title"`
	Size                 string     `json:"size"`
	Color                string     `json:"color"`
	Quantity             int        `json:"quantity"`
	PriceAtAddCents      int        `json:"price_at_add_cents"`
	DiscountedPriceCents *int       `json:"discounted_price_cents,omitempty"`
	ImageURL             *string    `json:"image_url,omitempty"`
	AddedAt              time.Time  `json:"added_at"`
}

// matches reports whether the line is identified by the given triple.
func (l LineItem) matches(productID uuid.UUID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// UnitPriceCents prefers the discounted price when it is present and lower
// than the price at add time.
func (l LineItem) UnitPriceCents() int {
	if l.DiscountedPriceCents != nil && *l.DiscountedPriceCents < l.PriceAtAddCents {
		return *l.DiscountedPriceCents
	}
	return l.PriceAtAddCents
}

// Cart is the owner-scoped bag persisted as a single blob.
type Cart struct {
	Items     []LineItem             `json:"items"`
	Coupon    *coupons.AppliedCoupon `json:"coupon,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// SubtotalCents sums unit price times quantity over all lines.
func (c Cart) SubtotalCents() int {
	total := 0
	for _, item := range c.Items {
		total += item.UnitPriceCents() * item.Quantity
	}
	return total
}

// ItemCount sums quantities, not distinct lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Totals is the checkout arithmetic: subtotal minus the applied coupon
// discount, floored at zero.
type Totals struct {
	SubtotalCents int `json:"subtotal_cents"`
	DiscountCents int `json:"discount_cents"`
	TotalCents    int `json:"total_cents"`
}

// ComputeTotals derives checkout totals from the current lines and coupon.
func (c Cart) ComputeTotals() Totals {
	subtotal := c.SubtotalCents()
	discount := 0
	if c.Coupon != nil {
		discount = c.Coupon.DiscountCents
	}
	if discount > subtotal {
		discount = subtotal
	}
	return Totals{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    subtotal - discount,
	}
}

// findLine returns the index of the matching line or -1.
func (c Cart) findLine(productID uuid.UUID, size, color string) int {
	for i, item := range c.Items {
		if item.matches(productID, size, color) {
			return i
		}
	}
	return -1
}
