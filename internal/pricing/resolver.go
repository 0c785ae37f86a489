package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/selection"
)

// PlaceholderImage is served when neither a selection nor the product
// carries an image.
const PlaceholderImage = "/static/images/placeholder.png"

// ResolvePrice derives the current unit price from the product and the
// active selections. Selections are scanned in insertion order and every
// price-bearing item overwrites the running price: the last one wins.
// Variant prices never stack additively.
func ResolvePrice(product *catalog.Product, selections []selection.SelectedVariant) decimal.Decimal {
	price := product.BasePrice()
	for _, entry := range selections {
		if entry.Item.Price != nil {
			price = *entry.Item.Price
		}
	}
	return price
}

// ResolveImage derives the representative image: the most recently
// selected image-bearing item wins, then the product's lead image, then
// the placeholder.
func ResolveImage(product *catalog.Product, selections []selection.SelectedVariant) string {
	for i := len(selections) - 1; i >= 0; i-- {
		if img := selections[i].Item.Image; img != nil && *img != "" {
			return *img
		}
	}
	if img := product.FirstImage(); img != "" {
		return img
	}
	return PlaceholderImage
}
