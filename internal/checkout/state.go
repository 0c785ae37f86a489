package checkout

import (
	"github.com/shopspring/decimal"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/pricing"
	"github.com/tahmidrayat/clickbazaar-backend/internal/selection"
)

// State is one checkout session's full picture: both selection stores,
// the synchronously-derived price and image, and the coupon outcome.
// States are value-copied through the reducer; the selection stores are
// cloned before every mutation.
type State struct {
	Product    *catalog.Product
	Variants   *selection.VariantSet
	Quantities *selection.QuantityList
	UnitPrice  decimal.Decimal
	Image      string
	CouponCode string
	Discount   decimal.Decimal
	Submitting bool
}

// NewState seeds a session for the product: empty substitution store,
// base-anchored accumulation store, price and image resolved from the
// bare product.
func NewState(product *catalog.Product) State {
	state := State{
		Product:    product,
		Variants:   selection.NewVariantSet(),
		Quantities: selection.NewQuantityList(product, nil),
		Discount:   decimal.Zero,
	}
	return recompute(state)
}

// ActiveSelections returns the selections that drive price and image
// resolution: the substitution store when it has any active entry, the
// accumulation store's lines otherwise.
func (s State) ActiveSelections() []selection.SelectedVariant {
	if s.Variants != nil && s.Variants.Len() > 0 {
		return s.Variants.Entries()
	}
	if s.Quantities != nil {
		return s.Quantities.Selections()
	}
	return nil
}

// TotalQuantity reports the purchasable quantity, never below one.
func (s State) TotalQuantity() int {
	if s.Quantities == nil {
		return 1
	}
	return s.Quantities.TotalQuantity()
}

func (s State) clone() State {
	out := s
	if s.Variants != nil {
		out.Variants = s.Variants.Clone()
	}
	if s.Quantities != nil {
		out.Quantities = s.Quantities.Clone()
	}
	return out
}

// recompute re-derives price and image from the active selections. It
// runs inside every reduction so consumers never observe a stale price.
func recompute(state State) State {
	selections := state.ActiveSelections()
	state.UnitPrice = pricing.ResolvePrice(state.Product, selections)
	state.Image = pricing.ResolveImage(state.Product, selections)
	return state
}
