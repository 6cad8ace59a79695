package repository

import (
	"context"

	"StorefrontAPI/internal/model"
)

// OrderRepository and SubscriptionRepository abstract the file-per-record
// store so it can be swapped for a transactional one without touching the
// checkout/webhook logic. Get methods return (nil, nil) when no record
// matches.
type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	Save(ctx context.Context, order *model.Order) error
}

type SubscriptionRepository interface {
	GetByID(ctx context.Context, subscriptionID string) (*model.Subscription, error)
	GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*model.Subscription, error)
	List(ctx context.Context) ([]model.Subscription, error)
	Save(ctx context.Context, sub *model.Subscription) error
}
