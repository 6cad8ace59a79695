package services

import (
	"context"
	"testing"

	"StorefrontAPI/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(slug string, price float64, ptype model.ProductType) model.Product {
	return model.Product{
		Slug:        slug,
		Name:        slug,
		ProductType: ptype,
		Pricing:     model.Pricing{Price: price},
		Status:      model.ProductStatusActive,
	}
}

func testSubscriptionProduct(slug string, price float64, trialDays int64) model.Product {
	p := testProduct(slug, price, model.ProductTypeService)
	p.Subscription = &model.SubscriptionPlan{
		Interval:      "month",
		IntervalCount: 1,
		TrialDays:     trialDays,
	}
	return p
}

func newCheckoutService(products map[string]model.Product, provider *mockProvider) *CheckoutService {
	catalog := NewCatalogService(&mockProductSource{products: products}, provider)
	return NewCheckoutService(catalog, provider, "https://shop.example")
}

func TestCreateSessionEmptyCart(t *testing.T) {
	provider := &mockProvider{}
	svc := newCheckoutService(nil, provider)

	_, err := svc.CreateSession(context.Background(), nil, "", "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, provider.createdSessions)
}

func TestCreateSessionUnknownSlug(t *testing.T) {
	provider := &mockProvider{}
	svc := newCheckoutService(map[string]model.Product{
		"widget": testProduct("widget", 5, model.ProductTypePhysical),
	}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "widget", Quantity: 1},
		{Slug: "gone", Quantity: 1},
	}, "", "")

	var notFoundErr *NotFoundError
	require.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "gone", notFoundErr.Key)
	// No provider-side session may be created as a side effect.
	assert.Empty(t, provider.createdSessions)
}

func TestCreateSessionRejectsMixedCart(t *testing.T) {
	provider := &mockProvider{}
	svc := newCheckoutService(map[string]model.Product{
		"widget": testProduct("widget", 5, model.ProductTypePhysical),
		"plan":   testSubscriptionProduct("plan", 10, 0),
	}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "widget", Quantity: 1},
		{Slug: "plan", Quantity: 1},
	}, "", "")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "separately")
	assert.Empty(t, provider.createdSessions)
}

func TestCreateSessionPaymentMode(t *testing.T) {
	provider := &mockProvider{}
	svc := newCheckoutService(map[string]model.Product{
		"widget": testProduct("widget", 5, model.ProductTypePhysical),
		"ebook":  testProduct("ebook", 12.345, model.ProductTypeDigital),
	}, provider)

	result, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "widget", Quantity: 2},
		{Slug: "ebook", Quantity: 1},
	}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", result.SessionID)
	assert.NotEmpty(t, result.URL)

	require.Len(t, provider.createdSessions, 1)
	req := provider.createdSessions[0]
	assert.Equal(t, "payment", req.Mode)

	// Physical product in cart: shipping collection with the allow-list.
	assert.True(t, req.CollectShipping)
	assert.Equal(t, []string{"US", "CA", "GB", "AU"}, req.ShippingCountries)

	assert.Equal(t, "2", req.Metadata["itemCount"])
	assert.Equal(t, "true", req.Metadata["hasPhysicalProducts"])

	require.Len(t, req.LineItems, 2)
	assert.Equal(t, int64(500), req.LineItems[0].UnitAmount)
	assert.Equal(t, int64(2), req.LineItems[0].Quantity)
	// 12.345 rounds to 1235, never truncates to 1234.
	assert.Equal(t, int64(1235), req.LineItems[1].UnitAmount)
	assert.Nil(t, req.LineItems[0].Recurring)
}

func TestCreateSessionNoShippingForDigitalOnly(t *testing.T) {
	provider := &mockProvider{}
	svc := newCheckoutService(map[string]model.Product{
		"ebook": testProduct("ebook", 9, model.ProductTypeDigital),
	}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "ebook", Quantity: 1},
	}, "", "")
	require.NoError(t, err)

	req := provider.createdSessions[0]
	assert.False(t, req.CollectShipping)
	assert.Equal(t, "false", req.Metadata["hasPhysicalProducts"])
}

func TestCreateSessionSubscriptionMode(t *testing.T) {
	provider := &mockProvider{}
	svc := newCheckoutService(map[string]model.Product{
		"basic": testSubscriptionProduct("basic", 10, 14),
		"pro":   testSubscriptionProduct("pro", 20, 30),
	}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "basic", Quantity: 1},
		{Slug: "pro", Quantity: 1},
	}, "", "")
	require.NoError(t, err)

	req := provider.createdSessions[0]
	assert.Equal(t, "subscription", req.Mode)
	// First subscription product wins the trial period.
	assert.Equal(t, int64(14), req.TrialDays)

	require.Len(t, req.LineItems, 2)
	require.NotNil(t, req.LineItems[0].Recurring)
	assert.Equal(t, "month", req.LineItems[0].Recurring.Interval)
}

func TestCreateSessionUsesCatalogIDForCurrentMode(t *testing.T) {
	p := testProduct("widget", 5, model.ProductTypeDigital)
	p.StripeProductID = "prod_live"
	p.StripeTestProductID = "prod_test"

	provider := &mockProvider{testMode: true}
	svc := newCheckoutService(map[string]model.Product{"widget": p}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "widget", Quantity: 1},
	}, "", "")
	require.NoError(t, err)

	li := provider.createdSessions[0].LineItems[0]
	assert.Equal(t, "prod_test", li.CatalogProductID)
	// Referenced catalog products carry no inline descriptor.
	assert.Empty(t, li.Name)
	assert.Equal(t, int64(500), li.UnitAmount)
}

func TestCreateSessionInlineDescriptorMetadata(t *testing.T) {
	p := testProduct("widget", 5, model.ProductTypeDigital)
	p.SKU = "W-1"
	p.Images = []string{"/images/widget.png"}

	provider := &mockProvider{}
	svc := newCheckoutService(map[string]model.Product{"widget": p}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "widget", Quantity: 1},
	}, "", "")
	require.NoError(t, err)

	li := provider.createdSessions[0].LineItems[0]
	assert.Equal(t, "widget", li.Metadata["slug"])
	assert.Equal(t, "digital", li.Metadata["type"])
	assert.Equal(t, "W-1", li.Metadata["sku"])
	require.Len(t, li.Images, 1)
	assert.Equal(t, "https://shop.example/images/widget.png", li.Images[0])
}

func TestCreateSessionProviderFailure(t *testing.T) {
	provider := &mockProvider{createErr: errBoom}
	svc := newCheckoutService(map[string]model.Product{
		"widget": testProduct("widget", 5, model.ProductTypeDigital),
	}, provider)

	_, err := svc.CreateSession(context.Background(), []CheckoutItemInput{
		{Slug: "widget", Quantity: 1},
	}, "", "")

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
}

func TestVerifySession(t *testing.T) {
	provider := &mockProvider{
		sessions: map[string]*SessionInfo{
			"cs_paid":   {SessionID: "cs_paid", Paid: true, CustomerEmail: "a@b.com"},
			"cs_unpaid": {SessionID: "cs_unpaid", Paid: false, Status: "open"},
		},
	}
	svc := newCheckoutService(nil, provider)

	paid, err := svc.VerifySession(context.Background(), "cs_paid")
	require.NoError(t, err)
	assert.True(t, paid.Verified)
	assert.Equal(t, "a@b.com", paid.CustomerEmail)

	unpaid, err := svc.VerifySession(context.Background(), "cs_unpaid")
	require.NoError(t, err)
	assert.False(t, unpaid.Verified)
	assert.Equal(t, "open", unpaid.Status)

	_, err = svc.VerifySession(context.Background(), "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	_, err = svc.VerifySession(context.Background(), "cs_unknown")
	require.ErrorAs(t, err, &validationErr)
}
