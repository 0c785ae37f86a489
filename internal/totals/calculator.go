package totals

import (
	"github.com/shopspring/decimal"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

// Default zone identifiers. These are wire-level strings the Order
// Service expects verbatim.
const (
	ZoneInsideDhaka  = "insideDhaka"
	ZoneOutsideDhaka = "outsideDhaka"
)

// ZoneCharges maps a delivery zone identifier to its flat charge.
type ZoneCharges map[string]decimal.Decimal

// NewZoneCharges builds the table from whole-currency amounts, typically
// sourced from config.
func NewZoneCharges(charges map[string]int) ZoneCharges {
	table := make(ZoneCharges, len(charges))
	for zone, charge := range charges {
		table[zone] = decimal.NewFromInt(int64(charge))
	}
	return table
}

// DefaultZoneCharges returns the built-in two-zone table.
func DefaultZoneCharges() ZoneCharges {
	return ZoneCharges{
		ZoneInsideDhaka:  decimal.NewFromInt(80),
		ZoneOutsideDhaka: decimal.NewFromInt(150),
	}
}

// Charge returns the delivery charge for the zone.
func (z ZoneCharges) Charge(zone string) (decimal.Decimal, error) {
	if charge, ok := z[zone]; ok {
		return charge, nil
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown delivery zone")
}

// Breakdown is the priced view of one prospective order.
type Breakdown struct {
	UnitPrice      decimal.Decimal
	Quantity       int
	Subtotal       decimal.Decimal
	DeliveryCharge decimal.Decimal
	Discount       decimal.Decimal
	GrandTotal     decimal.Decimal
}

// CalculateTotal combines unit price, quantity, delivery charge, and
// discount into a grand total, floored at zero.
func CalculateTotal(unitPrice decimal.Decimal, quantity int, deliveryCharge, couponDiscount decimal.Decimal) decimal.Decimal {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	total := subtotal.Add(deliveryCharge).Sub(couponDiscount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// Compute resolves the zone charge and returns the full breakdown.
func Compute(unitPrice decimal.Decimal, quantity int, zones ZoneCharges, zone string, couponDiscount decimal.Decimal) (Breakdown, error) {
	charge, err := zones.Charge(zone)
	if err != nil {
		return Breakdown{}, err
	}
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return Breakdown{
		UnitPrice:      unitPrice,
		Quantity:       quantity,
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Discount:       couponDiscount,
		GrandTotal:     CalculateTotal(unitPrice, quantity, charge, couponDiscount),
	}, nil
}
