package services

import (
	"context"
	"errors"
	"sync"

	"StorefrontAPI/internal/model"
)

type mockProductSource struct {
	products map[string]model.Product
	err      error
}

func (m *mockProductSource) GetBySlug(_ context.Context, slug string) (*model.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[slug]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockProductSource) ListAll(context.Context) ([]model.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []model.Product
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

// mockProvider satisfies CheckoutProvider, SessionReader and PortalProvider
// with canned responses and call recording.
type mockProvider struct {
	testMode bool

	catalogProducts map[string]*CatalogProduct
	catalogErr      error

	createdSessions []*SessionRequest
	createResult    *SessionResult
	createErr       error

	sessions   map[string]*SessionInfo
	sessionErr error

	lineItems    map[string][]LineItemInfo
	lineItemsErr error

	customersByEmail map[string]string
	portalURL        string
}

func (m *mockProvider) TestMode() bool { return m.testMode }

func (m *mockProvider) GetCatalogProduct(_ context.Context, id string) (*CatalogProduct, error) {
	if m.catalogErr != nil {
		return nil, m.catalogErr
	}
	return m.catalogProducts[id], nil
}

func (m *mockProvider) CreateSession(_ context.Context, req *SessionRequest) (*SessionResult, error) {
	m.createdSessions = append(m.createdSessions, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.createResult != nil {
		return m.createResult, nil
	}
	return &SessionResult{SessionID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}, nil
}

func (m *mockProvider) GetSession(_ context.Context, sessionID string) (*SessionInfo, error) {
	if m.sessionErr != nil {
		return nil, m.sessionErr
	}
	return m.sessions[sessionID], nil
}

func (m *mockProvider) SessionLineItems(_ context.Context, sessionID string) ([]LineItemInfo, error) {
	if m.lineItemsErr != nil {
		return nil, m.lineItemsErr
	}
	return m.lineItems[sessionID], nil
}

func (m *mockProvider) FindCustomerByEmail(_ context.Context, email string) (string, error) {
	return m.customersByEmail[email], nil
}

func (m *mockProvider) CreatePortalSession(_ context.Context, _, _ string) (string, error) {
	return m.portalURL, nil
}

type mockOrderRepo struct {
	mu      sync.Mutex
	orders  map[string]*model.Order
	saveErr error
	saves   int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: map[string]*model.Order{}}
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders[id], nil
}

func (m *mockOrderRepo) GetBySessionID(_ context.Context, sessionID string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.StripeSessionID == sessionID {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) List(context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *mockOrderRepo) Save(_ context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[order.OrderID] = order
	return nil
}

type mockSubRepo struct {
	mu   sync.Mutex
	subs map[string]*model.Subscription
}

func newMockSubRepo() *mockSubRepo {
	return &mockSubRepo{subs: map[string]*model.Subscription{}}
}

func (m *mockSubRepo) GetByID(_ context.Context, id string) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subs[id], nil
}

func (m *mockSubRepo) GetByStripeID(_ context.Context, stripeID string) (*model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.subs {
		if s.StripeSubscriptionID == stripeID {
			return s, nil
		}
	}
	return nil, nil
}

func (m *mockSubRepo) List(context.Context) ([]model.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Subscription
	for _, s := range m.subs {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockSubRepo) Save(_ context.Context, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[sub.SubscriptionID] = sub
	return nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) SendOrderConfirmation(_ context.Context, order *model.Order) error {
	m.sent = append(m.sent, order.OrderID)
	return m.err
}

var errBoom = errors.New("boom")
