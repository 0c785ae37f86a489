package checkout

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/discount"
	"github.com/tahmidrayat/clickbazaar-backend/internal/order"
	"github.com/tahmidrayat/clickbazaar-backend/internal/selection"
	"github.com/tahmidrayat/clickbazaar-backend/internal/totals"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
)

type catalogStub struct {
	product *catalog.Product
	err     error
}

func (s *catalogStub) GetProduct(_ context.Context, _ string) (*catalog.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

type orderCreatorStub struct {
	mu       sync.Mutex
	requests []order.CreateRequest
	err      error
	release  chan struct{} // when set, Create blocks until closed
}

func (s *orderCreatorStub) Create(_ context.Context, request order.CreateRequest) (*order.Order, error) {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	s.requests = append(s.requests, request)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &order.Order{ID: "order-1", Status: order.StatusPending, TotalAmount: request.TotalAmount}, nil
}

func (s *orderCreatorStub) received() []order.CreateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]order.CreateRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

func newTestManager(t *testing.T, orders *orderCreatorStub) *Manager {
	t.Helper()
	manager, err := NewManager(ManagerParams{
		Catalog: &catalogStub{product: testProduct()},
		Orders:  orders,
		Coupons: discount.NewCouponTable(map[string]int{"FreeShippingDhaka": 80}),
		Zones:   totals.DefaultZoneCharges(),
		Now:     func() time.Time { return time.UnixMilli(1700000000000) },
	})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	return manager
}

func testBilling() order.BillingInformation {
	return order.BillingInformation{
		Name:          "Rahim Uddin",
		Email:         "rahim@example.com",
		Phone:         "01711000000",
		Address:       "House 7, Road 3, Dhanmondi",
		Country:       "Bangladesh",
		PaymentMethod: "cod",
	}
}

func TestManagerCreateAndGet(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, &orderCreatorStub{})
	id, state, err := manager.Create(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !state.UnitPrice.Equal(dec(1000)) {
		t.Fatalf("expected base price 1000, got %s", state.UnitPrice)
	}

	got, err := manager.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Product.ID != "prod-1" {
		t.Fatalf("unexpected product %q", got.Product.ID)
	}

	if _, err := manager.Get(uuid.New()); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for unknown session, got %v", err)
	}
}

func TestManagerApplyStoresRejectedCouponState(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, &orderCreatorStub{})
	id, _, err := manager.Create(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := manager.Apply(context.Background(), id, ApplyCoupon{Code: "FreeShippingDhaka"}); err != nil {
		t.Fatalf("apply valid coupon: %v", err)
	}

	_, err = manager.Apply(context.Background(), id, ApplyCoupon{Code: "bogus"})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The cleared coupon state must have been persisted despite the error.
	state, err := manager.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !state.Discount.IsZero() || state.CouponCode != "" {
		t.Fatalf("rejected coupon left stale state: %s %q", state.Discount, state.CouponCode)
	}
}

func TestManagerQuoteAppliesBulkTier(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, &orderCreatorStub{})
	id, _, err := manager.Create(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Zero out the seeded base line so the five Red units are the whole
	// order, crossing the MinQuantity 5 tier priced at 900.
	if _, err := manager.Apply(context.Background(), id, UpdateQuantity{Group: selection.BaseVariantGroup, Value: "Panjabi", Quantity: 0}); err != nil {
		t.Fatalf("zero base line: %v", err)
	}
	product := testProduct()
	red, _ := product.FindVariant("Color", "Red")
	for i := 0; i < 5; i++ {
		if _, err := manager.Apply(context.Background(), id, AddSelection{Group: "Color", Item: red}); err != nil {
			t.Fatalf("add selection: %v", err)
		}
	}

	breakdown, err := manager.Quote(id, totals.ZoneInsideDhaka)
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !breakdown.UnitPrice.Equal(dec(900)) {
		t.Fatalf("expected bulk unit price 900, got %s", breakdown.UnitPrice)
	}
	if !breakdown.Subtotal.Equal(dec(4500)) {
		t.Fatalf("expected subtotal 4500, got %s", breakdown.Subtotal)
	}
	if !breakdown.GrandTotal.Equal(dec(4580)) {
		t.Fatalf("expected grand total 4580, got %s", breakdown.GrandTotal)
	}

	if _, err := manager.Quote(id, "moonBase"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown zone, got %v", err)
	}
}

func TestManagerSubmitResetsSession(t *testing.T) {
	t.Parallel()

	orders := &orderCreatorStub{}
	manager := newTestManager(t, orders)
	id, _, err := manager.Create(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	product := testProduct()
	red, _ := product.FindVariant("Color", "Red")
	if _, err := manager.Apply(context.Background(), id, ToggleVariant{Group: "Color", Item: red}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := manager.Apply(context.Background(), id, ApplyCoupon{Code: "FreeShippingDhaka"}); err != nil {
		t.Fatalf("coupon: %v", err)
	}

	created, err := manager.Submit(context.Background(), id, SubmitInput{
		Billing: testBilling(),
		Zone:    totals.ZoneInsideDhaka,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ID != "order-1" {
		t.Fatalf("unexpected order id %q", created.ID)
	}

	requests := orders.received()
	if len(requests) != 1 {
		t.Fatalf("expected 1 order request, got %d", len(requests))
	}
	// 1200 unit price + 80 delivery - 80 coupon.
	if requests[0].TotalAmount != 1200 {
		t.Fatalf("expected totalAmount 1200, got %v", requests[0].TotalAmount)
	}
	if requests[0].CourierCharge != totals.ZoneInsideDhaka {
		t.Fatalf("expected zone string in courierCharge, got %q", requests[0].CourierCharge)
	}
	if requests[0].CuponCode != "FreeShippingDhaka" {
		t.Fatalf("expected coupon code in payload, got %q", requests[0].CuponCode)
	}

	state, err := manager.Get(id)
	if err != nil {
		t.Fatalf("get after submit: %v", err)
	}
	if state.Variants.Len() != 0 || state.CouponCode != "" || !state.Discount.IsZero() {
		t.Fatal("expected session reset after successful submission")
	}
	if state.Submitting {
		t.Fatal("reset session still marked submitting")
	}
}

func TestManagerSubmitFailureLeavesState(t *testing.T) {
	t.Parallel()

	orders := &orderCreatorStub{err: pkgerrors.New(pkgerrors.CodeDependency, "order service unavailable")}
	manager := newTestManager(t, orders)
	id, _, err := manager.Create(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	product := testProduct()
	red, _ := product.FindVariant("Color", "Red")
	if _, err := manager.Apply(context.Background(), id, ToggleVariant{Group: "Color", Item: red}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	_, err = manager.Submit(context.Background(), id, SubmitInput{Billing: testBilling(), Zone: totals.ZoneInsideDhaka})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	state, getErr := manager.Get(id)
	if getErr != nil {
		t.Fatalf("get after failed submit: %v", getErr)
	}
	if state.Variants.Len() != 1 {
		t.Fatal("failed submission must leave the selections intact")
	}
	if state.Submitting {
		t.Fatal("submitting flag must clear after a failed submission")
	}
}

func TestManagerSubmitIsSingleFlight(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	orders := &orderCreatorStub{release: release}
	manager := newTestManager(t, orders)
	id, _, err := manager.Create(context.Background(), "prod-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := manager.Submit(context.Background(), id, SubmitInput{Billing: testBilling(), Zone: totals.ZoneInsideDhaka})
		firstDone <- err
	}()

	// Wait for the in-flight submission to mark the session.
	deadline := time.Now().Add(2 * time.Second)
	for {
		state, err := manager.Get(id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if state.Submitting {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("first submission never marked the session submitting")
		}
		time.Sleep(time.Millisecond)
	}

	_, err = manager.Submit(context.Background(), id, SubmitInput{Billing: testBilling(), Zone: totals.ZoneInsideDhaka})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state-conflict for concurrent submit, got %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if got := len(orders.received()); got != 1 {
		t.Fatalf("expected exactly one order request, got %d", got)
	}
}
