package enums

import "fmt"

// OfferScope controls which listings a promotional offer may discount.
type OfferScope string

const (
	OfferScopeAll      OfferScope = "all"
	OfferScopeProducts OfferScope = "products"
	OfferScopeVariants OfferScope = "variants"
)

var validOfferScopes = []OfferScope{
	OfferScopeAll,
	OfferScopeProducts,
	OfferScopeVariants,
}

// String implements fmt.Stringer.
func (o OfferScope) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OfferScope.
func (o OfferScope) IsValid() bool {
	for _, candidate := range validOfferScopes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOfferScope converts raw input into an OfferScope.
func ParseOfferScope(value string) (OfferScope, error) {
	for _, candidate := range validOfferScopes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer scope %q", value)
}
