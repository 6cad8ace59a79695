package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"StorefrontAPI/internal/model"
)

// Shipping collection is restricted to this allow-list.
var shippingCountries = []string{"US", "CA", "GB", "AU"}

type CheckoutService struct {
	Catalog  *CatalogService
	Provider CheckoutProvider
	BaseURL  string
}

func NewCheckoutService(catalog *CatalogService, provider CheckoutProvider, baseURL string) *CheckoutService {
	return &CheckoutService{
		Catalog:  catalog,
		Provider: provider,
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// CheckoutItemInput is a client-submitted cart entry. Only slug, quantity
// and variant are trusted; all monetary fields are re-resolved from the
// catalog.
type CheckoutItemInput struct {
	Slug      string `json:"slug"`
	Quantity  int64  `json:"quantity"`
	VariantID string `json:"variantid,omitempty"`
}

type VerifyResult struct {
	Verified      bool   `json:"verified"`
	Status        string `json:"status,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
}

// CreateSession re-validates the submitted cart against the catalog,
// classifies it, and builds a provider checkout session. Mixed carts
// (subscription + one-time) are rejected outright.
func (s *CheckoutService) CreateSession(ctx context.Context, items []CheckoutItemInput, successURL, cancelURL string) (*SessionResult, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Message: "cart is empty"}
	}

	products := make([]*model.Product, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, &ValidationError{Message: fmt.Sprintf("invalid quantity for %s", it.Slug)}
		}
		p, err := s.Catalog.GetProduct(ctx, it.Slug)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &NotFoundError{Resource: "product", Key: it.Slug}
		}
		products = append(products, p)
	}

	var subscriptionCount, oneTimeCount int
	hasPhysical := false
	for _, p := range products {
		if p.IsSubscription() {
			subscriptionCount++
		} else {
			oneTimeCount++
		}
		if p.ProductType == model.ProductTypePhysical {
			hasPhysical = true
		}
	}
	if subscriptionCount > 0 && oneTimeCount > 0 {
		return nil, &ValidationError{
			Message: "cart mixes subscription and one-time products; check out subscriptions separately",
		}
	}

	req := &SessionRequest{
		Mode:       "payment",
		SuccessURL: successURL,
		CancelURL:  cancelURL,
		Metadata: map[string]string{
			"itemCount":           fmt.Sprintf("%d", len(items)),
			"hasPhysicalProducts": fmt.Sprintf("%t", hasPhysical),
		},
	}
	if req.SuccessURL == "" {
		req.SuccessURL = s.BaseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	if req.CancelURL == "" {
		req.CancelURL = s.BaseURL + "/cart"
	}
	if hasPhysical {
		req.CollectShipping = true
		req.ShippingCountries = shippingCountries
	}

	if subscriptionCount > 0 {
		req.Mode = "subscription"
		// First subscription product wins the trial period.
		for _, p := range products {
			if p.IsSubscription() {
				req.TrialDays = p.Subscription.TrialDays
				break
			}
		}
	}

	testMode := s.Provider.TestMode()
	for i, it := range items {
		p := products[i]
		li := SessionLineItem{
			UnitAmount: toMinorUnits(p.Pricing.Price),
			Currency:   currencyOrDefault(p.Pricing.Currency),
			Quantity:   it.Quantity,
			Recurring:  p.Subscription,
		}
		if catalogID := p.CatalogID(testMode); catalogID != "" {
			li.CatalogProductID = catalogID
		} else {
			li.Name = p.Name
			li.Description = p.Description
			li.Images = s.absoluteImageURLs(p.Images)
			li.Metadata = map[string]string{
				"slug": p.Slug,
				"type": string(p.ProductType),
			}
			if p.SKU != "" {
				li.Metadata["sku"] = p.SKU
			}
		}
		req.LineItems = append(req.LineItems, li)
	}

	result, err := s.Provider.CreateSession(ctx, req)
	if err != nil {
		return nil, &ProviderError{Op: "create checkout session", Err: err}
	}
	return result, nil
}

// VerifySession reports whether the provider considers the session paid.
func (s *CheckoutService) VerifySession(ctx context.Context, sessionID string) (*VerifyResult, error) {
	if sessionID == "" {
		return nil, &ValidationError{Message: "missing session_id"}
	}

	info, err := s.Provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, &ProviderError{Op: "retrieve checkout session", Err: err}
	}
	if info == nil {
		return nil, &ValidationError{Message: "invalid session_id"}
	}

	if !info.Paid {
		return &VerifyResult{Verified: false, Status: info.Status}, nil
	}
	return &VerifyResult{Verified: true, CustomerEmail: info.CustomerEmail}, nil
}

// toMinorUnits rounds, never truncates.
func toMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return "usd"
	}
	return strings.ToLower(currency)
}

func (s *CheckoutService) absoluteImageURLs(images []string) []string {
	if len(images) == 0 {
		return nil
	}
	out := make([]string, 0, len(images))
	for _, img := range images {
		if strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
			out = append(out, img)
			continue
		}
		out = append(out, s.BaseURL+"/"+strings.TrimPrefix(img, "/"))
	}
	return out
}
