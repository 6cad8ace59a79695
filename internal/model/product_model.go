package model

import "time"

type ProductType string

const (
	ProductTypePhysical ProductType = "physical"
	ProductTypeDigital  ProductType = "digital"
	ProductTypeService  ProductType = "service"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

type Pricing struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

// SubscriptionPlan marks a product as a recurring purchase. A product is a
// subscription product exactly when this descriptor is present.
type SubscriptionPlan struct {
	Interval      string `json:"interval"` // "month" or "year"
	IntervalCount int64  `json:"intervalcount"`
	TrialDays     int64  `json:"trialdays,omitempty"`
}

type Inventory struct {
	TrackInventory bool `json:"trackinventory"`
	Quantity       int  `json:"quantity"`
	AllowBackorder bool `json:"allowbackorder"`
}

type Product struct {
	Slug                string            `json:"slug"`
	Name                string            `json:"name"`
	Description         string            `json:"description,omitempty"`
	Category            string            `json:"category,omitempty"`
	SKU                 string            `json:"sku,omitempty"`
	Images              []string          `json:"images,omitempty"`
	ProductType         ProductType       `json:"producttype"`
	Pricing             Pricing           `json:"pricing"`
	Subscription        *SubscriptionPlan `json:"subscription,omitempty"`
	StripeProductID     string            `json:"stripeproductid,omitempty"`
	StripeTestProductID string            `json:"stripetestproductid,omitempty"`
	Inventory           Inventory         `json:"inventory"`
	Status              ProductStatus     `json:"status"`
	Unlisted            bool              `json:"unlisted,omitempty"`
	CreatedAt           *time.Time        `json:"created_at,omitempty"`
	UpdatedAt           *time.Time        `json:"updated_at,omitempty"`
}

func (p *Product) IsSubscription() bool {
	return p.Subscription != nil
}

// CatalogID returns the Stripe product id matching the current key mode,
// or "" when the product is purely local-priced.
func (p *Product) CatalogID(testMode bool) string {
	if testMode {
		return p.StripeTestProductID
	}
	return p.StripeProductID
}
