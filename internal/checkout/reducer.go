package checkout

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/discount"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

// Action is the closed set of session mutations. Every user interaction
// maps to exactly one action; the reducer is the only mutation path.
type Action interface {
	isAction()
}

// ToggleVariant flips the substitution store: same value deselects the
// group, anything else replaces the group's active item.
type ToggleVariant struct {
	Group string
	Item  catalog.VariantItem
}

// AddSelection appends or accumulates a line in the quantity store.
type AddSelection struct {
	Group string
	Item  catalog.VariantItem
}

// RemoveSelection deletes a line from the quantity store.
type RemoveSelection struct {
	Group string
	Value string
}

// UpdateQuantity sets a line's quantity in the quantity store.
type UpdateQuantity struct {
	Group    string
	Value    string
	Quantity int
}

// ApplyCoupon resolves a coupon code against the fixed table.
type ApplyCoupon struct {
	Code string
}

// Reset returns the session to its initial state.
type Reset struct{}

func (ToggleVariant) isAction()   {}
func (AddSelection) isAction()    {}
func (RemoveSelection) isAction() {}
func (UpdateQuantity) isAction()  {}
func (ApplyCoupon) isAction()     {}
func (Reset) isAction()           {}

// Reducer applies actions to session states. It owns no mutable state
// beyond the fixed coupon table, so Reduce is a pure function of its
// inputs: the incoming state is never modified.
type Reducer struct {
	coupons *discount.CouponTable
}

// NewReducer builds a reducer over the given coupon table.
func NewReducer(coupons *discount.CouponTable) (*Reducer, error) {
	if coupons == nil {
		return nil, fmt.Errorf("coupon table required")
	}
	return &Reducer{coupons: coupons}, nil
}

// Reduce returns the next state. Price and image are re-derived in the
// same reduction; there is no deferred recompute. An invalid coupon is
// the one non-fatal path: the returned state has its discount cleared
// and the error reports the rejection.
func (r *Reducer) Reduce(state State, action Action) (State, error) {
	next := state.clone()

	switch act := action.(type) {
	case ToggleVariant:
		next.Variants.Toggle(act.Group, act.Item)
	case AddSelection:
		next.Quantities.Add(act.Group, act.Item)
	case RemoveSelection:
		next.Quantities.Remove(act.Group, act.Value)
	case UpdateQuantity:
		next.Quantities.UpdateQuantity(act.Group, act.Value, act.Quantity)
	case ApplyCoupon:
		amount, err := r.coupons.Resolve(act.Code)
		if err != nil {
			next.Discount = decimal.Zero
			next.CouponCode = ""
			return recompute(next), err
		}
		next.Discount = amount
		next.CouponCode = act.Code
	case Reset:
		reset := NewState(next.Product)
		reset.Submitting = next.Submitting
		return reset, nil
	default:
		return state, pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout action")
	}

	return recompute(next), nil
}
