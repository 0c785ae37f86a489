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

// Order is the Order Service's view of a created order.
type Order struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"totalAmount"`
	ConsignmentID string  `json:"consignmentId,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

// Creator is the narrow submission surface the checkout manager uses.
type Creator interface {
	Create(ctx context.Context, request CreateRequest) (*Order, error)
}

// Client talks to the external Order Service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds an Order Service client.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("order service base url is required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Create submits the order-creation request.
func (c *Client) Create(ctx context.Context, request CreateRequest) (*Order, error) {
	var created Order
	if err := c.do(ctx, http.MethodPost, "/orders", request, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID fetches a single order.
func (c *Client) GetByID(ctx context.Context, id string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	var found Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// GetByPhone lists a customer's orders by billing phone number.
func (c *Client) GetByPhone(ctx context.Context, phone string) ([]Order, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone is required")
	}
	var found []Order
	if err := c.do(ctx, http.MethodGet, "/orders?phone="+url.QueryEscape(phone), nil, &found); err != nil {
		return nil, err
	}
	return found, nil
}

// GetByConsignmentID fetches the order tied to a courier consignment.
func (c *Client) GetByConsignmentID(ctx context.Context, consignmentID string) (*Order, error) {
	if strings.TrimSpace(consignmentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "consignment id is required")
	}
	var found Order
	if err := c.do(ctx, http.MethodGet, "/orders?consignmentId="+url.QueryEscape(consignmentID), nil, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// UpdateStatus transitions an order's status.
func (c *Client) UpdateStatus(ctx context.Context, id, status string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(status) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "status is required")
	}
	payload := map[string]string{"status": status}
	var updated Order
	if err := c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", payload, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "call order service")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("order service rejected request: %s", strings.TrimSpace(string(raw))))
	case resp.StatusCode >= 500:
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("order service responded %d", resp.StatusCode))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order response")
	}
	return nil
}
