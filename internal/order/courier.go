package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

// Shipment is the courier's view of a consignment.
type Shipment struct {
	ConsignmentID string `json:"consignmentId"`
	Status        string `json:"status"`
}

// ShipmentRequest creates a consignment from an already-created order.
type ShipmentRequest struct {
	OrderID       string  `json:"orderId"`
	RecipientName string  `json:"recipientName"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Zone          string  `json:"zone"`
	Amount        float64 `json:"amount"`
}

// CourierClient talks to the external courier provider.
type CourierClient struct {
	baseURL string
	http    *http.Client
}

// NewCourierClient builds a courier client.
func NewCourierClient(baseURL string, timeout time.Duration) (*CourierClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("courier base url is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &CourierClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// CreateShipment hands the order to the courier.
func (c *CourierClient) CreateShipment(ctx context.Context, request ShipmentRequest) (*Shipment, error) {
	if strings.TrimSpace(request.OrderID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	raw, err := json.Marshal(request)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode shipment request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipments", bytes.NewReader(raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build shipment request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call courier")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("courier responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var shipment Shipment
	if err := json.NewDecoder(resp.Body).Decode(&shipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode shipment")
	}
	return &shipment, nil
}

// DeliveryStatus polls the courier for the consignment's status.
func (c *CourierClient) DeliveryStatus(ctx context.Context, consignmentID string) (string, error) {
	if strings.TrimSpace(consignmentID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "consignment id is required")
	}

	endpoint := fmt.Sprintf("%s/shipments/%s/status", c.baseURL, url.PathEscape(consignmentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build status request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call courier")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "consignment not found")
	}
	if resp.StatusCode >= 400 {
		return "", pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("courier responded %d", resp.StatusCode))
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode status")
	}
	return payload.Status, nil
}
