package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestBasePricePrefersDiscounted(t *testing.T) {
	t.Parallel()

	discounted := dec(800)
	product := &Product{RegularPrice: dec(1000), DiscountedPrice: &discounted}
	if got := product.BasePrice(); !got.Equal(dec(800)) {
		t.Fatalf("expected discounted price, got %s", got)
	}

	product.DiscountedPrice = nil
	if got := product.BasePrice(); !got.Equal(dec(1000)) {
		t.Fatalf("expected regular price, got %s", got)
	}
}

func TestFindVariant(t *testing.T) {
	t.Parallel()

	price := dec(1200)
	product := &Product{
		VariantGroups: []VariantGroup{
			{Name: "Color", Items: []VariantItem{{Value: "Red", Price: &price}, {Value: "Blue"}}},
			{Name: "Size", Items: []VariantItem{{Value: "L"}}},
		},
	}

	item, ok := product.FindVariant("Color", "Red")
	if !ok || item.Price == nil || !item.Price.Equal(dec(1200)) {
		t.Fatalf("expected Red with price override, got %+v ok=%v", item, ok)
	}

	if _, ok := product.FindVariant("Color", "Green"); ok {
		t.Fatal("expected miss for unknown value")
	}
	if _, ok := product.FindVariant("Fit", "Slim"); ok {
		t.Fatal("expected miss for unknown group")
	}
}

func TestFirstImageFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	product := &Product{}
	if got := product.FirstImage(); got != "" {
		t.Fatalf("expected empty image, got %q", got)
	}
	product.Images = []string{"a.jpg", "b.jpg"}
	if got := product.FirstImage(); got != "a.jpg" {
		t.Fatalf("expected first image, got %q", got)
	}
}
