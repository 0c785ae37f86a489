package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is the read-only catalog view the checkout engine works from.
type Product struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	RegularPrice    decimal.Decimal   `json:"regularPrice"`
	DiscountedPrice *decimal.Decimal  `json:"discountedPrice,omitempty"`
	Images          []string          `json:"images"`
	VariantGroups   []VariantGroup    `json:"variantGroups,omitempty"`
	BulkPricing     []BulkPricingTier `json:"bulkPricing,omitempty"`
	StockQuantity   int               `json:"stockQuantity"`
}

// VariantGroup is a named axis of customization, e.g. "Color".
type VariantGroup struct {
	Name  string        `json:"name"`
	Items []VariantItem `json:"items"`
}

// VariantItem is one concrete value within a group. Price, stock, and
// image are overrides; nil means the product-level value applies.
type VariantItem struct {
	Value string           `json:"value"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int             `json:"stock,omitempty"`
	Image *string          `json:"image,omitempty"`
}

// BulkPricingTier replaces the unit price once MinQuantity is reached.
type BulkPricingTier struct {
	MinQuantity int             `json:"minQuantity"`
	Price       decimal.Decimal `json:"price"`
}

// BasePrice returns the discounted price when set, otherwise the regular price.
func (p *Product) BasePrice() decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.RegularPrice
}

// FirstImage returns the product's lead image, or "" when it has none.
func (p *Product) FirstImage() string {
	if p == nil || len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// FindVariant looks up a variant item by group name and value.
func (p *Product) FindVariant(group, value string) (VariantItem, bool) {
	if p == nil {
		return VariantItem{}, false
	}
	for _, vg := range p.VariantGroups {
		if vg.Name != group {
			continue
		}
		for _, item := range vg.Items {
			if item.Value == value {
				return item, true
			}
		}
	}
	return VariantItem{}, false
}
