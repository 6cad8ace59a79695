package services

import (
	"context"

	"StorefrontAPI/internal/model"
)

// Provider-facing types shared by the checkout, catalog, webhook and billing
// services. external/stripe implements all of the interfaces below.

// CatalogProduct is the live overlay fetched from the provider's catalog.
type CatalogProduct struct {
	Name       string
	Images     []string
	UnitAmount int64 // minor units; 0 when the product has no default price
	Currency   string
}

type CatalogProvider interface {
	TestMode() bool
	GetCatalogProduct(ctx context.Context, productID string) (*CatalogProduct, error)
}

// SessionLineItem is one line of a checkout session to be created. When
// CatalogProductID is set the provider's catalog product is referenced and
// only the unit amount is overridden; otherwise an inline price descriptor
// is built from the remaining fields.
type SessionLineItem struct {
	CatalogProductID string
	Name             string
	Description      string
	Images           []string
	Metadata         map[string]string
	UnitAmount       int64
	Currency         string
	Quantity         int64
	Recurring        *model.SubscriptionPlan
}

type SessionRequest struct {
	Mode              string // "payment" or "subscription"
	LineItems         []SessionLineItem
	SuccessURL        string
	CancelURL         string
	CollectShipping   bool
	ShippingCountries []string
	TrialDays         int64
	Metadata          map[string]string
}

type SessionResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// SessionInfo is the provider's view of an existing checkout session.
type SessionInfo struct {
	SessionID       string
	Paid            bool
	Status          string
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	PaymentIntentID string
	Currency        string
	AmountSubtotal  int64
	AmountTotal     int64
	Shipping        *model.ShippingAddress
	Metadata        map[string]string
}

// LineItemInfo is one line of a completed session, with product metadata
// recovered from the expanded product reference where present.
type LineItemInfo struct {
	ProductSlug string
	ProductType string
	SKU         string
	Name        string
	Quantity    int64
	UnitAmount  int64
	TotalAmount int64
}

type CheckoutProvider interface {
	CatalogProvider
	CreateSession(ctx context.Context, req *SessionRequest) (*SessionResult, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
}

type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	SessionLineItems(ctx context.Context, sessionID string) ([]LineItemInfo, error)
}

type PortalProvider interface {
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}
