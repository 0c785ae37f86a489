package discount

import (
	"github.com/shopspring/decimal"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

// CouponTable resolves coupon codes against a fixed code-to-amount table.
// Matching is exact and case-sensitive.
type CouponTable struct {
	amounts map[string]decimal.Decimal
}

// NewCouponTable builds a table from whole-currency amounts, typically
// sourced from config.
func NewCouponTable(codes map[string]int) *CouponTable {
	amounts := make(map[string]decimal.Decimal, len(codes))
	for code, amount := range codes {
		amounts[code] = decimal.NewFromInt(int64(amount))
	}
	return &CouponTable{amounts: amounts}
}

// Resolve returns the flat discount for the code. A miss returns a zero
// discount and a validation error; the caller clears any previously
// applied coupon on that path.
func (t *CouponTable) Resolve(code string) (decimal.Decimal, error) {
	if t != nil {
		if amount, ok := t.amounts[code]; ok {
			return amount, nil
		}
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon code")
}
