// Package stripe wraps the Stripe SDK behind the provider interfaces
// consumed by the services layer. The key mode (live vs test) is derived
// from the configured secret key.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/services"

	stripe "github.com/stripe/stripe-go/v79"
	portalsession "github.com/stripe/stripe-go/v79/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
	"github.com/stripe/stripe-go/v79/product"
	"github.com/stripe/stripe-go/v79/webhook"
)

type Client struct {
	webhookSecret string
	testMode      bool
}

func NewClient() (*Client, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return nil, errors.New("STRIPE_SECRET_KEY not set")
	}
	stripe.Key = key

	return &Client{
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		testMode:      strings.HasPrefix(key, "sk_test_"),
	}, nil
}

func (c *Client) TestMode() bool {
	return c.testMode
}

// GetCatalogProduct fetches live name/images/price for the overlay.
func (c *Client) GetCatalogProduct(ctx context.Context, productID string) (*services.CatalogProduct, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	params.AddExpand("default_price")

	p, err := product.Get(productID, params)
	if err != nil {
		return nil, err
	}

	cp := &services.CatalogProduct{
		Name:   p.Name,
		Images: p.Images,
	}
	if p.DefaultPrice != nil {
		cp.UnitAmount = p.DefaultPrice.UnitAmount
		cp.Currency = string(p.DefaultPrice.Currency)
	}
	return cp, nil
}

func (c *Client) CreateSession(ctx context.Context, req *services.SessionRequest) (*services.SessionResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(req.Mode),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	if req.CollectShipping {
		params.ShippingAddressCollection = &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.ShippingCountries),
		}
	}
	if req.Mode == "subscription" && req.TrialDays > 0 {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(req.TrialDays),
		}
	}

	for _, li := range req.LineItems {
		priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency:   stripe.String(li.Currency),
			UnitAmount: stripe.Int64(li.UnitAmount),
		}
		if li.CatalogProductID != "" {
			priceData.Product = stripe.String(li.CatalogProductID)
		} else {
			productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:     stripe.String(li.Name),
				Metadata: li.Metadata,
			}
			if li.Description != "" {
				productData.Description = stripe.String(li.Description)
			}
			if len(li.Images) > 0 {
				productData.Images = stripe.StringSlice(li.Images)
			}
			priceData.ProductData = productData
		}
		if li.Recurring != nil {
			priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval:      stripe.String(li.Recurring.Interval),
				IntervalCount: stripe.Int64(li.Recurring.IntervalCount),
			}
		}
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: priceData,
			Quantity:  stripe.Int64(li.Quantity),
		})
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		return nil, err
	}
	return &services.SessionResult{SessionID: s.ID, URL: s.URL}, nil
}

// GetSession returns (nil, nil) for a session id Stripe does not know.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*services.SessionInfo, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, nil
		}
		return nil, err
	}

	info := &services.SessionInfo{
		SessionID:      s.ID,
		Paid:           s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Status:         string(s.Status),
		Currency:       string(s.Currency),
		AmountSubtotal: s.AmountSubtotal,
		AmountTotal:    s.AmountTotal,
		Metadata:       s.Metadata,
	}
	if s.CustomerDetails != nil {
		info.CustomerEmail = s.CustomerDetails.Email
		info.CustomerName = s.CustomerDetails.Name
		info.CustomerPhone = s.CustomerDetails.Phone
	}
	if s.PaymentIntent != nil {
		info.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.ShippingDetails != nil && s.ShippingDetails.Address != nil {
		info.Shipping = &model.ShippingAddress{
			Name:       s.ShippingDetails.Name,
			Line1:      s.ShippingDetails.Address.Line1,
			Line2:      s.ShippingDetails.Address.Line2,
			City:       s.ShippingDetails.Address.City,
			State:      s.ShippingDetails.Address.State,
			PostalCode: s.ShippingDetails.Address.PostalCode,
			Country:    s.ShippingDetails.Address.Country,
		}
	}
	return info, nil
}

// SessionLineItems expands product references so slug/type/sku can be
// recovered from product metadata; the provider-side name is the fallback.
func (c *Client) SessionLineItems(ctx context.Context, sessionID string) ([]services.LineItemInfo, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.AddExpand("data.price.product")

	var lines []services.LineItemInfo
	iter := checkoutsession.ListLineItems(params)
	for iter.Next() {
		li := iter.LineItem()
		info := services.LineItemInfo{
			Name:        li.Description,
			Quantity:    li.Quantity,
			TotalAmount: li.AmountTotal,
		}
		if li.Price != nil {
			info.UnitAmount = li.Price.UnitAmount
			if p := li.Price.Product; p != nil {
				if p.Name != "" {
					info.Name = p.Name
				}
				info.ProductSlug = p.Metadata["slug"]
				info.ProductType = p.Metadata["type"]
				info.SKU = p.Metadata["sku"]
			}
		}
		lines = append(lines, info)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := customer.List(params)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	return "", iter.Err()
}

func (c *Client) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	s, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

// ParseWebhookEvent verifies the signature over the raw body before any
// parsing, then decodes the payload into its tagged variant. Unrecognized
// event types decode to model.UnknownEvent.
func (c *Client) ParseWebhookEvent(payload []byte, sigHeader string) (model.WebhookEvent, error) {
	if sigHeader == "" {
		return nil, &services.SignatureError{Err: errors.New("missing Stripe-Signature header")}
	}
	if c.webhookSecret == "" {
		return nil, &services.SignatureError{Err: errors.New("webhook secret not configured")}
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, c.webhookSecret)
	if err != nil {
		return nil, &services.SignatureError{Err: err}
	}

	switch event.Type {
	case "checkout.session.completed":
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, err
		}
		return model.CheckoutCompletedEvent{
			SessionID: s.ID,
			Paid:      s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		}, nil

	case "checkout.session.expired":
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, err
		}
		return model.CheckoutExpiredEvent{SessionID: s.ID}, nil

	case "charge.refunded":
		var ch stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
			return nil, err
		}
		ev := model.ChargeRefundedEvent{
			ChargeID:       ch.ID,
			AmountRefunded: ch.AmountRefunded,
		}
		if ch.PaymentIntent != nil {
			ev.PaymentIntentID = ch.PaymentIntent.ID
		}
		return ev, nil

	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		return subscriptionChanged(&sub), nil

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, err
		}
		canceledAt := time.Now().UTC()
		if sub.CanceledAt > 0 {
			canceledAt = time.Unix(sub.CanceledAt, 0).UTC()
		}
		return model.SubscriptionDeletedEvent{
			StripeSubscriptionID: sub.ID,
			CanceledAt:           canceledAt,
		}, nil

	default:
		return model.UnknownEvent{Type: string(event.Type)}, nil
	}
}

func subscriptionChanged(sub *stripe.Subscription) model.SubscriptionChangedEvent {
	ev := model.SubscriptionChangedEvent{
		StripeSubscriptionID: sub.ID,
		Status:               model.SubscriptionStatus(sub.Status),
		CurrentPeriodStart:   time.Unix(sub.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:     time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	if sub.Customer != nil {
		ev.StripeCustomerID = sub.Customer.ID
	}
	if sub.TrialEnd > 0 {
		t := time.Unix(sub.TrialEnd, 0).UTC()
		ev.TrialEnd = &t
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		if price := sub.Items.Data[0].Price; price != nil {
			ev.Amount = price.UnitAmount
			ev.Currency = string(price.Currency)
			if price.Recurring != nil {
				ev.Interval = string(price.Recurring.Interval)
				ev.IntervalCount = price.Recurring.IntervalCount
			}
		}
	}
	return ev
}
