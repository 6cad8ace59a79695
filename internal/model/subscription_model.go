package model

import "time"

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusPaused   SubscriptionStatus = "paused"
	SubscriptionStatusTrialing SubscriptionStatus = "trialing"
)

// Subscription mirrors one Stripe subscription; amounts are minor units.
type Subscription struct {
	SubscriptionID       string             `json:"subscriptionid"`
	StripeSubscriptionID string             `json:"stripesubscriptionid"`
	StripeCustomerID     string             `json:"stripecustomerid,omitempty"`
	Status               SubscriptionStatus `json:"status"`
	Amount               int64              `json:"amount"`
	Currency             string             `json:"currency,omitempty"`
	Interval             string             `json:"interval"` // "month" or "year"
	IntervalCount        int64              `json:"intervalcount"`
	CurrentPeriodStart   time.Time          `json:"currentperiodstart"`
	CurrentPeriodEnd     time.Time          `json:"currentperiodend"`
	TrialEnd             *time.Time         `json:"trialend,omitempty"`
	CanceledAt           *time.Time         `json:"canceledat,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}
