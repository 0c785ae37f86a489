package discount

import (
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
)

// SelectBulkTier picks the bulk pricing tier with the greatest
// MinQuantity not exceeding the quantity. Among tiers sharing that
// MinQuantity the lowest price wins. Nil means no tier qualifies and
// base or variant pricing stands.
func SelectBulkTier(quantity int, tiers []catalog.BulkPricingTier) *catalog.BulkPricingTier {
	var selected *catalog.BulkPricingTier
	for _, tier := range tiers {
		if tier.MinQuantity > quantity {
			continue
		}
		if selected == nil ||
			tier.MinQuantity > selected.MinQuantity ||
			(tier.MinQuantity == selected.MinQuantity && tier.Price.LessThan(selected.Price)) {
			copy := tier
			selected = &copy
		}
	}
	return selected
}
