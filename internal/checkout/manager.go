package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tahmidrayat/clickbazaar-backend/internal/catalog"
	"github.com/tahmidrayat/clickbazaar-backend/internal/discount"
	"github.com/tahmidrayat/clickbazaar-backend/internal/order"
	"github.com/tahmidrayat/clickbazaar-backend/internal/totals"
	pkgerrors "github.com/tahmidrayat/clickbazaar-backend/pkg/errors"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/logger"
	"github.com/tahmidrayat/clickbazaar-backend/pkg/metrics"
)

// SubmitInput carries the submission-time data the session does not own.
type SubmitInput struct {
	Billing order.BillingInformation
	Zone    string
}

// Manager owns the live checkout sessions. Sessions are in-memory and
// uuid-keyed; a process restart discards them.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]State

	catalog catalog.Loader
	orders  order.Creator
	reducer *Reducer
	zones   totals.ZoneCharges
	metrics *metrics.CheckoutMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// ManagerParams wires the manager's collaborators.
type ManagerParams struct {
	Catalog catalog.Loader
	Orders  order.Creator
	Coupons *discount.CouponTable
	Zones   totals.ZoneCharges
	Metrics *metrics.CheckoutMetrics
	Logger  *logger.Logger
	Now     func() time.Time
}

// NewManager builds the checkout session manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon table required")
	}
	if len(params.Zones) == 0 {
		return nil, fmt.Errorf("zone charges required")
	}
	reducer, err := NewReducer(params.Coupons)
	if err != nil {
		return nil, err
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		sessions: make(map[uuid.UUID]State),
		catalog:  params.Catalog,
		orders:   params.Orders,
		reducer:  reducer,
		zones:    params.Zones,
		metrics:  params.Metrics,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Create loads the product and opens a new session for it.
func (m *Manager) Create(ctx context.Context, productID string) (uuid.UUID, State, error) {
	product, err := m.catalog.GetProduct(ctx, productID)
	if err != nil {
		return uuid.Nil, State{}, err
	}

	id := uuid.New()
	state := NewState(product)

	m.mu.Lock()
	m.sessions[id] = state
	m.mu.Unlock()

	if m.logg != nil {
		m.logg.Info(m.logg.WithFields(ctx, map[string]any{
			"session_id": id.String(),
			"product_id": product.ID,
		}), "checkout.session.created")
	}
	return id, state, nil
}

// Get returns the session's current state.
func (m *Manager) Get(id uuid.UUID) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[id]
	if !ok {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
	}
	return state, nil
}

// Apply runs one action through the reducer and stores the result. An
// invalid coupon still advances the session (discount cleared) before
// the validation error is surfaced.
func (m *Manager) Apply(ctx context.Context, id uuid.UUID, action Action) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.sessions[id]
	if !ok {
		return State{}, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
	}

	next, err := m.reducer.Reduce(state, action)
	m.sessions[id] = next
	if err != nil {
		if _, isCoupon := action.(ApplyCoupon); isCoupon {
			m.metrics.IncCouponRejected()
		}
		return next, err
	}
	return next, nil
}

// Quote prices the session for a delivery zone: bulk tier applied to
// the unit price, zone charge and coupon discount folded into the
// grand total.
func (m *Manager) Quote(id uuid.UUID, zone string) (totals.Breakdown, error) {
	state, err := m.Get(id)
	if err != nil {
		return totals.Breakdown{}, err
	}
	return m.quote(state, zone)
}

func (m *Manager) quote(state State, zone string) (totals.Breakdown, error) {
	quantity := state.TotalQuantity()
	unitPrice := state.UnitPrice
	if tier := discount.SelectBulkTier(quantity, state.Product.BulkPricing); tier != nil {
		unitPrice = tier.Price
	}
	return totals.Compute(unitPrice, quantity, m.zones, zone, state.Discount)
}

// Submit builds the order payload and posts it to the Order Service.
// Submission is single-flight per session: a second submit while one is
// in flight is rejected. A failed submission leaves the session state
// untouched so the shopper can correct and resubmit; a successful one
// resets the session.
func (m *Manager) Submit(ctx context.Context, id uuid.UUID, input SubmitInput) (*order.Order, error) {
	m.mu.Lock()
	state, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout session not found")
	}
	if state.Submitting {
		m.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order submission already in progress")
	}
	state.Submitting = true
	m.sessions[id] = state
	snapshot := state
	m.mu.Unlock()

	started := m.now()
	created, err := m.submit(ctx, snapshot, input)

	m.mu.Lock()
	current, stillThere := m.sessions[id]
	if stillThere {
		if err != nil {
			current.Submitting = false
			m.sessions[id] = current
		} else {
			m.sessions[id] = NewState(current.Product)
		}
	}
	m.mu.Unlock()

	m.metrics.ObserveSubmitDuration(input.Zone, m.now().Sub(started))
	if err != nil {
		m.metrics.IncSubmitFailure(input.Zone)
		if m.logg != nil {
			m.logg.Error(m.logg.WithSessionID(ctx, id.String()), "checkout.submit.failed", err)
		}
		return nil, err
	}
	m.metrics.IncSubmitSuccess(input.Zone)
	if m.logg != nil {
		m.logg.Info(m.logg.WithFields(ctx, map[string]any{
			"session_id": id.String(),
			"order_id":   created.ID,
		}), "checkout.submit.succeeded")
	}
	return created, nil
}

func (m *Manager) submit(ctx context.Context, state State, input SubmitInput) (*order.Order, error) {
	breakdown, err := m.quote(state, input.Zone)
	if err != nil {
		return nil, err
	}

	request := order.BuildRequest(order.BuildInput{
		Product:    state.Product,
		Image:      state.Image,
		UnitPrice:  breakdown.UnitPrice,
		Quantity:   breakdown.Quantity,
		Selections: state.ActiveSelections(),
		Billing:    input.Billing,
		Zone:       input.Zone,
		CouponCode: state.CouponCode,
		Discount:   state.Discount,
		Total:      breakdown.GrandTotal,
		Now:        m.now(),
	})

	return m.orders.Create(ctx, request)
}
