package order

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/selection"
)

// StatusPending is the status every freshly submitted order carries.
const StatusPending = "pending"

// SelectionValue is one chosen variant value with its price snapshot.
type SelectionValue struct {
	Value string  `json:"value"`
	Price float64 `json:"price"`
}

// GroupSelection is the per-group arm of the selected-variants union.
// A group with a single active value serializes to a bare object; a
// group holding several distinct values serializes to an array.
// Downstream consumers branch on the JSON shape, so both arms must be
// kept as-is.
type GroupSelection struct {
	Values []SelectionValue
}

func (g GroupSelection) MarshalJSON() ([]byte, error) {
	if len(g.Values) == 1 {
		return json.Marshal(g.Values[0])
	}
	return json.Marshal(g.Values)
}

func (g *GroupSelection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty group selection")
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &g.Values)
	}
	var single SelectionValue
	if err := json.Unmarshal(trimmed, &single); err != nil {
		return err
	}
	g.Values = []SelectionValue{single}
	return nil
}

// Item is one order line in the creation request.
type Item struct {
	Product          string                    `json:"product"`
	Image            string                    `json:"image"`
	Quantity         int                       `json:"quantity"`
	ItemKey          string                    `json:"itemKey"`
	Price            float64                   `json:"price"`
	SelectedVariants map[string]GroupSelection `json:"selectedVariants"`
}

// BillingInformation mirrors the Order Service's billing block.
type BillingInformation struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Country       string `json:"country"`
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

// CreateRequest is the order-creation payload. Field names are frozen
// by the Order Service contract, including the courierCharge field that
// carries the zone identifier string and the cuponCode spelling.
type CreateRequest struct {
	Items              []Item             `json:"items"`
	TotalAmount        float64            `json:"totalAmount"`
	Status             string             `json:"status"`
	BillingInformation BillingInformation `json:"billingInformation"`
	CourierCharge      string             `json:"courierCharge"`
	CuponCode          string             `json:"cuponCode"`
	Discount           float64            `json:"discount"`
}

// BuildInput carries everything the builder snapshots into a request.
type BuildInput struct {
	Product    *catalog.Product
	Image      string
	UnitPrice  decimal.Decimal
	Quantity   int
	Selections []selection.SelectedVariant
	Billing    BillingInformation
	Zone       string
	CouponCode string
	Discount   decimal.Decimal
	Total      decimal.Decimal
	Now        time.Time
}

// ItemKey synthesizes the per-submission line key from the product id
// and the submission timestamp. It keys order lines in consuming UIs;
// it is not a server-side idempotency token.
func ItemKey(productID string, at time.Time) string {
	return fmt.Sprintf("%s-%d", productID, at.UnixMilli())
}

// BuildRequest assembles the order-creation request from the current
// checkout state snapshot.
func BuildRequest(input BuildInput) CreateRequest {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	item := Item{
		Product:          input.Product.ID,
		Image:            input.Image,
		Quantity:         input.Quantity,
		ItemKey:          ItemKey(input.Product.ID, now),
		Price:            input.UnitPrice.InexactFloat64(),
		SelectedVariants: buildSelectedVariants(input.Product, input.Selections),
	}

	return CreateRequest{
		Items:              []Item{item},
		TotalAmount:        input.Total.InexactFloat64(),
		Status:             StatusPending,
		BillingInformation: input.Billing,
		CourierCharge:      input.Zone,
		CuponCode:          input.CouponCode,
		Discount:           input.Discount.InexactFloat64(),
	}
}

func buildSelectedVariants(product *catalog.Product, selections []selection.SelectedVariant) map[string]GroupSelection {
	out := make(map[string]GroupSelection, len(selections))
	for _, entry := range selections {
		group := out[entry.Group]
		group.Values = append(group.Values, SelectionValue{
			Value: entry.Item.Value,
			Price: selectionPrice(product, entry.Item),
		})
		out[entry.Group] = group
	}
	return out
}

func selectionPrice(product *catalog.Product, item catalog.VariantItem) float64 {
	if item.Price != nil {
		return item.Price.InexactFloat64()
	}
	return product.BasePrice().InexactFloat64()
}
