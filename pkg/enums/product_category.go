package enums

import "fmt"

// ProductCategory maps to the category enum used by the catalog.
type ProductCategory string

const (
	ProductCategoryDresses     ProductCategory = "dresses"
	ProductCategoryTops        ProductCategory = "tops"
	ProductCategoryBottoms     ProductCategory = "bottoms"
	ProductCategoryOuterwear   ProductCategory = "outerwear"
	ProductCategoryFootwear    ProductCategory = "footwear"
	ProductCategoryAccessories ProductCategory = "accessories"
)

var validProductCategories = []ProductCategory{
	ProductCategoryDresses,
	ProductCategoryTops,
	ProductCategoryBottoms,
	ProductCategoryOuterwear,
	ProductCategoryFootwear,
	ProductCategoryAccessories,
}

// String implements fmt.Stringer.
func (p ProductCategory) String() string {
	return string(p)
}

// IsValid reports whether the category is recognized.
func (p ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCategory converts a raw string into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
