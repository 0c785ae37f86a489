package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/discount"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:           "prod-1",
		Name:         "Panjabi",
		RegularPrice: dec(1000),
		Images:       []string{"default.jpg"},
		VariantGroups: []catalog.VariantGroup{
			{Name: "Color", Items: []catalog.VariantItem{
				{Value: "Red", Price: decPtr(1200), Image: strPtr("red.jpg")},
				{Value: "Blue"},
			}},
			{Name: "Size", Items: []catalog.VariantItem{{Value: "M"}, {Value: "L"}}},
		},
		BulkPricing: []catalog.BulkPricingTier{
			{MinQuantity: 5, Price: dec(900)},
		},
		StockQuantity: 10,
	}
}

func newTestReducer(t *testing.T) *Reducer {
	t.Helper()
	reducer, err := NewReducer(discount.NewCouponTable(map[string]int{"FreeShippingDhaka": 80}))
	if err != nil {
		t.Fatalf("new reducer: %v", err)
	}
	return reducer
}

func TestReduceToggleRecomputesPriceAndImage(t *testing.T) {
	t.Parallel()

	reducer := newTestReducer(t)
	product := testProduct()
	state := NewState(product)

	red, _ := product.FindVariant("Color", "Red")
	state, err := reducer.Reduce(state, ToggleVariant{Group: "Color", Item: red})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.UnitPrice.Equal(dec(1200)) {
		t.Fatalf("expected price 1200 after Red, got %s", state.UnitPrice)
	}
	if state.Image != "red.jpg" {
		t.Fatalf("expected red.jpg, got %q", state.Image)
	}

	large, _ := product.FindVariant("Size", "L")
	state, err = reducer.Reduce(state, ToggleVariant{Group: "Size", Item: large})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Price-less, image-less selection changes neither.
	if !state.UnitPrice.Equal(dec(1200)) || state.Image != "red.jpg" {
		t.Fatalf("expected 1200/red.jpg, got %s/%q", state.UnitPrice, state.Image)
	}

	// Toggling Red off reverts to base.
	state, err = reducer.Reduce(state, ToggleVariant{Group: "Color", Item: red})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.UnitPrice.Equal(dec(1000)) {
		t.Fatalf("expected base price 1000 after deselect, got %s", state.UnitPrice)
	}
	if state.Image != "default.jpg" {
		t.Fatalf("expected default image after deselect, got %q", state.Image)
	}
}

func TestReduceDoesNotMutateInputState(t *testing.T) {
	t.Parallel()

	reducer := newTestReducer(t)
	product := testProduct()
	state := NewState(product)

	red, _ := product.FindVariant("Color", "Red")
	next, err := reducer.Reduce(state, ToggleVariant{Group: "Color", Item: red})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Variants.Len() != 0 {
		t.Fatal("input state's variant set was mutated")
	}
	if next.Variants.Len() != 1 {
		t.Fatal("next state missing the toggled variant")
	}
	if !state.UnitPrice.Equal(dec(1000)) {
		t.Fatalf("input state's price changed to %s", state.UnitPrice)
	}
}

func TestReduceQuantityActions(t *testing.T) {
	t.Parallel()

	reducer := newTestReducer(t)
	product := testProduct()
	state := NewState(product)

	red, _ := product.FindVariant("Color", "Red")
	state, _ = reducer.Reduce(state, AddSelection{Group: "Color", Item: red})
	state, _ = reducer.Reduce(state, AddSelection{Group: "Color", Item: red})

	if got := state.Quantities.Quantity("Color", "Red"); got != 2 {
		t.Fatalf("expected accumulated quantity 2, got %d", got)
	}

	state, _ = reducer.Reduce(state, UpdateQuantity{Group: "Color", Value: "Red", Quantity: 0})
	if got := state.Quantities.Quantity("Color", "Red"); got != 0 {
		t.Fatalf("expected non-base line removed at zero, got %d", got)
	}

	state, _ = reducer.Reduce(state, RemoveSelection{Group: "Color", Value: "Red"})
	if state.TotalQuantity() < 1 {
		t.Fatalf("total quantity fell below 1: %d", state.TotalQuantity())
	}
}

func TestReduceApplyCoupon(t *testing.T) {
	t.Parallel()

	reducer := newTestReducer(t)
	state := NewState(testProduct())

	state, err := reducer.Reduce(state, ApplyCoupon{Code: "FreeShippingDhaka"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.Discount.Equal(dec(80)) || state.CouponCode != "FreeShippingDhaka" {
		t.Fatalf("expected discount 80 and applied code, got %s %q", state.Discount, state.CouponCode)
	}

	// A bad code clears both the discount and the prior applied code.
	state, err = reducer.Reduce(state, ApplyCoupon{Code: "not-a-real-code"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !state.Discount.IsZero() || state.CouponCode != "" {
		t.Fatalf("expected cleared coupon state, got %s %q", state.Discount, state.CouponCode)
	}
}

func TestReduceReset(t *testing.T) {
	t.Parallel()

	reducer := newTestReducer(t)
	product := testProduct()
	state := NewState(product)

	red, _ := product.FindVariant("Color", "Red")
	state, _ = reducer.Reduce(state, ToggleVariant{Group: "Color", Item: red})
	state, _ = reducer.Reduce(state, ApplyCoupon{Code: "FreeShippingDhaka"})

	state, err := reducer.Reduce(state, Reset{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Variants.Len() != 0 || !state.Discount.IsZero() || state.CouponCode != "" {
		t.Fatalf("expected pristine state after reset, got %+v", state)
	}
	if !state.UnitPrice.Equal(dec(1000)) {
		t.Fatalf("expected base price after reset, got %s", state.UnitPrice)
	}
}

func TestReduceZeroVariantProduct(t *testing.T) {
	t.Parallel()

	reducer := newTestReducer(t)
	product := &catalog.Product{ID: "bare", Name: "Lungi", RegularPrice: dec(450), StockQuantity: 3}
	state := NewState(product)

	if !state.UnitPrice.Equal(dec(450)) {
		t.Fatalf("expected base-price-only mode, got %s", state.UnitPrice)
	}

	state, err := reducer.Reduce(state, ApplyCoupon{Code: "FreeShippingDhaka"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.UnitPrice.Equal(dec(450)) {
		t.Fatalf("price drifted in base-only mode: %s", state.UnitPrice)
	}
}
