package checkout

import (
	"github.com/google/uuid"

	checkoutsvc "github.com/tahmidrayat/clickbazaar-backend/internal/checkout"
	"github.com/tahmidrayat/clickbazaar-backend/internal/totals"
)

type variantEntry struct {
	Group string   `json:"group"`
	Value string   `json:"value"`
	Price *float64 `json:"price,omitempty"`
	Image *string  `json:"image,omitempty"`
}

type quantityEntry struct {
	Group    string `json:"group"`
	Value    string `json:"value"`
	Quantity int    `json:"quantity"`
	IsBase   bool   `json:"isBase,omitempty"`
}

type sessionResponse struct {
	SessionID     string          `json:"sessionId"`
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	Variants      []variantEntry  `json:"variants"`
	Quantities    []quantityEntry `json:"quantities"`
	UnitPrice     float64         `json:"unitPrice"`
	Image         string          `json:"image"`
	TotalQuantity int             `json:"totalQuantity"`
	CouponCode    string          `json:"couponCode,omitempty"`
	Discount      float64         `json:"discount"`
}

func newSessionResponse(id uuid.UUID, state checkoutsvc.State) sessionResponse {
	resp := sessionResponse{
		SessionID:     id.String(),
		Variants:      []variantEntry{},
		Quantities:    []quantityEntry{},
		UnitPrice:     state.UnitPrice.InexactFloat64(),
		Image:         state.Image,
		TotalQuantity: state.TotalQuantity(),
		CouponCode:    state.CouponCode,
		Discount:      state.Discount.InexactFloat64(),
	}
	if state.Product != nil {
		resp.ProductID = state.Product.ID
		resp.ProductName = state.Product.Name
	}
	if state.Variants != nil {
		for _, selected := range state.Variants.Entries() {
			entry := variantEntry{Group: selected.Group, Value: selected.Item.Value}
			if selected.Item.Price != nil {
				price := selected.Item.Price.InexactFloat64()
				entry.Price = &price
			}
			entry.Image = selected.Item.Image
			resp.Variants = append(resp.Variants, entry)
		}
	}
	if state.Quantities != nil {
		for _, line := range state.Quantities.Entries() {
			resp.Quantities = append(resp.Quantities, quantityEntry{
				Group:    line.Group,
				Value:    line.Item.Value,
				Quantity: line.Quantity,
				IsBase:   line.IsBase,
			})
		}
	}
	return resp
}

type quoteResponse struct {
	Zone           string  `json:"zone"`
	UnitPrice      float64 `json:"unitPrice"`
	Quantity       int     `json:"quantity"`
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	Discount       float64 `json:"discount"`
	GrandTotal     float64 `json:"grandTotal"`
}

func newQuoteResponse(zone string, breakdown totals.Breakdown) quoteResponse {
	return quoteResponse{
		Zone:           zone,
		UnitPrice:      breakdown.UnitPrice.InexactFloat64(),
		Quantity:       breakdown.Quantity,
		Subtotal:       breakdown.Subtotal.InexactFloat64(),
		DeliveryCharge: breakdown.DeliveryCharge.InexactFloat64(),
		Discount:       breakdown.Discount.InexactFloat64(),
		GrandTotal:     breakdown.GrandTotal.InexactFloat64(),
	}
}
