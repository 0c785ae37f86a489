package checkout

import (
	"fmt"

	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	checkoutsvc "github.com/tahmidrayat/clickbazaar-backend/internal/checkout"
	"github.com/tahmidrayat/clickbazaar-backend/internal/order"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

type createSessionRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// Action type tags accepted on the actions endpoint.
const (
	actionToggleVariant   = "toggleVariant"
	actionAddSelection    = "addSelection"
	actionRemoveSelection = "removeSelection"
	actionUpdateQuantity  = "updateQuantity"
	actionApplyCoupon     = "applyCoupon"
	actionReset           = "reset"
)

type actionRequest struct {
	Type     string `json:"type" validate:"required,oneof=toggleVariant addSelection removeSelection updateQuantity applyCoupon reset"`
	Group    string `json:"group,omitempty"`
	Value    string `json:"value,omitempty"`
	Quantity *int   `json:"quantity,omitempty"`
	Code     string `json:"code,omitempty"`
}

// toAction resolves the wire action against the session's product. Item
// lookups are by (group, value); an unknown pair is a validation error
// so a stale storefront cannot select variants the catalog dropped.
func (a actionRequest) toAction(product *catalog.Product) (checkoutsvc.Action, error) {
	switch a.Type {
	case actionToggleVariant:
		item, err := resolveItem(product, a.Group, a.Value)
		if err != nil {
			return nil, err
		}
		return checkoutsvc.ToggleVariant{Group: a.Group, Item: item}, nil
	case actionAddSelection:
		item, err := resolveItem(product, a.Group, a.Value)
		if err != nil {
			return nil, err
		}
		return checkoutsvc.AddSelection{Group: a.Group, Item: item}, nil
	case actionRemoveSelection:
		if a.Group == "" || a.Value == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "group and value are required")
		}
		return checkoutsvc.RemoveSelection{Group: a.Group, Value: a.Value}, nil
	case actionUpdateQuantity:
		if a.Group == "" || a.Value == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "group and value are required")
		}
		if a.Quantity == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity is required")
		}
		return checkoutsvc.UpdateQuantity{Group: a.Group, Value: a.Value, Quantity: *a.Quantity}, nil
	case actionApplyCoupon:
		if a.Code == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "code is required")
		}
		return checkoutsvc.ApplyCoupon{Code: a.Code}, nil
	case actionReset:
		return checkoutsvc.Reset{}, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown action type %q", a.Type))
}

func resolveItem(product *catalog.Product, group, value string) (catalog.VariantItem, error) {
	if group == "" || value == "" {
		return catalog.VariantItem{}, pkgerrors.New(pkgerrors.CodeValidation, "group and value are required")
	}
	item, ok := product.FindVariant(group, value)
	if !ok {
		return catalog.VariantItem{}, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("variant %s/%s not found on product", group, value))
	}
	return item, nil
}

type billingPayload struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	Country       string `json:"country"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
	Notes         string `json:"notes"`
}

type submitRequest struct {
	Billing billingPayload `json:"billingInformation" validate:"required"`
	Zone    string         `json:"zone" validate:"required"`
}

func (r submitRequest) toInput() checkoutsvc.SubmitInput {
	country := r.Billing.Country
	if country == "" {
		country = "Bangladesh"
	}
	return checkoutsvc.SubmitInput{
		Billing: order.BillingInformation{
			Name:          r.Billing.Name,
			Email:         r.Billing.Email,
			Phone:         r.Billing.Phone,
			Address:       r.Billing.Address,
			Country:       country,
			PaymentMethod: r.Billing.PaymentMethod,
			Notes:         r.Billing.Notes,
		},
		Zone: r.Zone,
	}
}
