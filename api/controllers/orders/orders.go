package orders

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tahmidrayat/clickbazaar-backend/api/responses"
	"github.com/tahmidrayat/clickbazaar-backend/api/validators"
	ordersvc "github.com/tahmidrayat/clickbazaar-backend/internal/order"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/logger"
)

// GetByID proxies a single-order lookup to the Order Service.
func GetByID(client *ordersvc.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		found, err := client.GetByID(r.Context(), chi.URLParam(r, "orderID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

// GetByPhone lists a customer's orders by billing phone number.
func GetByPhone(client *ordersvc.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone := r.URL.Query().Get("phone")
		if phone == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "phone query parameter is required"))
			return
		}
		found, err := client.GetByPhone(r.Context(), phone)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, found)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus transitions an order's status through the Order Service.
func UpdateStatus(client *ordersvc.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		updated, err := client.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type createShipmentRequest struct {
	RecipientName string  `json:"recipientName" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	Zone          string  `json:"zone" validate:"required"`
	Amount        float64 `json:"amount" validate:"required"`
}

// CreateShipment hands a created order to the courier provider. The
// order id comes from the URL; the order itself is not re-validated
// here, the courier rejects unknown ids.
func CreateShipment(courier *ordersvc.CourierClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if courier == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "courier not configured"))
			return
		}
		var payload createShipmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shipment, err := courier.CreateShipment(r.Context(), ordersvc.ShipmentRequest{
			OrderID:       chi.URLParam(r, "orderID"),
			RecipientName: payload.RecipientName,
			Phone:         payload.Phone,
			Address:       payload.Address,
			Zone:          payload.Zone,
			Amount:        payload.Amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, shipment)
	}
}

// TrackShipment reports the courier's delivery status for a consignment
// alongside the order it belongs to.
func TrackShipment(client *ordersvc.Client, courier *ordersvc.CourierClient, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if courier == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "courier not configured"))
			return
		}
		consignmentID := chi.URLParam(r, "consignmentID")

		status, err := courier.DeliveryStatus(r.Context(), consignmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		found, err := client.GetByConsignmentID(r.Context(), consignmentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"consignmentId":  consignmentID,
			"deliveryStatus": status,
			"order":          found,
		})
	}
}
