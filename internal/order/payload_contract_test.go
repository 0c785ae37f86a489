package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/selection"
)

// Full-payload snapshot against the Order Service contract. Field names
// here are load-bearing: the consumer parses them verbatim.
func TestBuildRequestFullPayloadSnapshot(t *testing.T) {
	t.Parallel()

	redPrice := dec(1200)
	product := &catalog.Product{
		ID:           "prod-7",
		Name:         "Panjabi",
		RegularPrice: dec(1000),
		Images:       []string{"front.jpg"},
		VariantGroups: []catalog.VariantGroup{
			{Name: "Color", Items: []catalog.VariantItem{{Value: "Red", Price: &redPrice}}},
		},
	}

	request := BuildRequest(BuildInput{
		Product:   product,
		Image:     "front.jpg",
		UnitPrice: dec(1200),
		Quantity:  2,
		Selections: []selection.SelectedVariant{
			{Group: "Color", Item: catalog.VariantItem{Value: "Red", Price: &redPrice}},
		},
		Billing: BillingInformation{
			Name:          "Karima Akter",
			Email:         "karima@example.com",
			Phone:         "01811000000",
			Address:       "Agrabad, Chattogram",
			Country:       "Bangladesh",
			PaymentMethod: "cod",
			Notes:         "call before delivery",
		},
		Zone:       "outsideDhaka",
		CouponCode: "EidBazaar150",
		Discount:   dec(150),
		Total:      dec(2400),
		Now:        time.UnixMilli(1700000000000),
	})

	raw, err := json.Marshal(request)
	require.NoError(t, err)

	require.JSONEq(t, `{
		"items": [{
			"product": "prod-7",
			"image": "front.jpg",
			"quantity": 2,
			"itemKey": "prod-7-1700000000000",
			"price": 1200,
			"selectedVariants": {
				"Color": {"value": "Red", "price": 1200}
			}
		}],
		"totalAmount": 2400,
		"status": "pending",
		"billingInformation": {
			"name": "Karima Akter",
			"email": "karima@example.com",
			"phone": "01811000000",
			"address": "Agrabad, Chattogram",
			"country": "Bangladesh",
			"paymentMethod": "cod",
			"notes": "call before delivery"
		},
		"courierCharge": "outsideDhaka",
		"cuponCode": "EidBazaar150",
		"discount": 150
	}`, string(raw))

	var roundTrip CreateRequest
	require.NoError(t, json.Unmarshal(raw, &roundTrip))
	assert.Equal(t, request.TotalAmount, roundTrip.TotalAmount)
	assert.Equal(t, request.CuponCode, roundTrip.CuponCode)
	require.Len(t, roundTrip.Items, 1)
	assert.Equal(t, request.Items[0].ItemKey, roundTrip.Items[0].ItemKey)
}
