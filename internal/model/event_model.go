package model

import "time"

// WebhookEvent is the tagged-variant form of an inbound provider event.
// One variant per recognized event type; anything else decodes to
// UnknownEvent, which is always a safe no-op.
type WebhookEvent interface {
	Kind() string
}

type CheckoutCompletedEvent struct {
	SessionID string
	Paid      bool
}

func (CheckoutCompletedEvent) Kind() string { return "checkout.session.completed" }

type CheckoutExpiredEvent struct {
	SessionID string
}

func (CheckoutExpiredEvent) Kind() string { return "checkout.session.expired" }

type ChargeRefundedEvent struct {
	ChargeID        string
	PaymentIntentID string
	AmountRefunded  int64
}

func (ChargeRefundedEvent) Kind() string { return "charge.refunded" }

// SubscriptionChangedEvent covers both subscription created and updated.
type SubscriptionChangedEvent struct {
	StripeSubscriptionID string
	StripeCustomerID     string
	Status               SubscriptionStatus
	Amount               int64
	Currency             string
	Interval             string
	IntervalCount        int64
	CurrentPeriodStart   time.Time
	CurrentPeriodEnd     time.Time
	TrialEnd             *time.Time
}

func (SubscriptionChangedEvent) Kind() string { return "customer.subscription.updated" }

type SubscriptionDeletedEvent struct {
	StripeSubscriptionID string
	CanceledAt           time.Time
}

func (SubscriptionDeletedEvent) Kind() string { return "customer.subscription.deleted" }

type UnknownEvent struct {
	Type string
}

func (e UnknownEvent) Kind() string { return e.Type }
