package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"

	"github.com/google/uuid"
)

// Mailer sends the optional order-confirmation email; nil disables it.
type Mailer interface {
	SendOrderConfirmation(ctx context.Context, order *model.Order) error
}

// WebhookService materializes Orders and Subscriptions from verified
// provider events. It is the sole writer of Orders at creation time.
type WebhookService struct {
	Orders        repository.OrderRepository
	Subscriptions repository.SubscriptionRepository
	Provider      SessionReader
	Mailer        Mailer
}

func NewWebhookService(
	orders repository.OrderRepository,
	subs repository.SubscriptionRepository,
	provider SessionReader,
	mailer Mailer,
) *WebhookService {
	return &WebhookService{
		Orders:        orders,
		Subscriptions: subs,
		Provider:      provider,
		Mailer:        mailer,
	}
}

// HandleEvent dispatches one verified event. Recording failures are logged
// and swallowed: the provider must not be told to retry indefinitely for a
// local persistence bug, and it retries on non-2xx on its own schedule.
func (s *WebhookService) HandleEvent(ctx context.Context, ev model.WebhookEvent) {
	switch e := ev.(type) {
	case model.CheckoutCompletedEvent:
		if err := s.recordOrder(ctx, e); err != nil {
			log.Printf("webhook: failed to record order for session %s: %v", e.SessionID, err)
		}

	case model.CheckoutExpiredEvent:
		log.Printf("webhook: checkout session expired: %s", e.SessionID)

	case model.ChargeRefundedEvent:
		// Observability only; no order mutation is wired for refunds yet.
		log.Printf("webhook: charge refunded: %s (payment_intent=%s, amount=%d)",
			e.ChargeID, e.PaymentIntentID, e.AmountRefunded)

	case model.SubscriptionChangedEvent:
		if err := s.upsertSubscription(ctx, e); err != nil {
			log.Printf("webhook: failed to upsert subscription %s: %v", e.StripeSubscriptionID, err)
		}

	case model.SubscriptionDeletedEvent:
		if err := s.cancelSubscription(ctx, e); err != nil {
			log.Printf("webhook: failed to cancel subscription %s: %v", e.StripeSubscriptionID, err)
		}

	default:
		log.Printf("webhook: ignoring event type %q", ev.Kind())
	}
}

// recordOrder creates exactly one Order per completed session. The
// existence check is the idempotency gate; a duplicate delivery is a no-op.
func (s *WebhookService) recordOrder(ctx context.Context, e model.CheckoutCompletedEvent) error {
	existing, err := s.Orders.GetBySessionID(ctx, e.SessionID)
	if err != nil {
		return fmt.Errorf("idempotency lookup: %w", err)
	}
	if existing != nil {
		log.Printf("webhook: order already recorded for session %s, skipping", e.SessionID)
		return nil
	}

	info, err := s.Provider.GetSession(ctx, e.SessionID)
	if err != nil {
		return fmt.Errorf("fetch session: %w", err)
	}
	if info == nil {
		return fmt.Errorf("session %s not found at provider", e.SessionID)
	}

	lines, err := s.Provider.SessionLineItems(ctx, e.SessionID)
	if err != nil {
		return fmt.Errorf("fetch line items: %w", err)
	}

	items := make([]model.OrderItem, 0, len(lines))
	var subtotal int64
	for _, li := range lines {
		item := model.OrderItem{
			ProductSlug: li.ProductSlug,
			ProductName: li.Name,
			ProductType: model.ProductType(li.ProductType),
			SKU:         li.SKU,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitAmount,
			TotalPrice:  li.TotalAmount,
		}
		if item.TotalPrice == 0 {
			item.TotalPrice = li.UnitAmount * li.Quantity
		}
		items = append(items, item)
		subtotal += item.TotalPrice
	}

	status := model.OrderStatusPending
	if info.Paid {
		status = model.OrderStatusPaid
	}

	now := time.Now().UTC()
	order := &model.Order{
		OrderID:         newOrderID(now),
		StripeSessionID: e.SessionID,
		PaymentIntentID: info.PaymentIntentID,
		Status:          status,
		Customer: model.Customer{
			Email: info.CustomerEmail,
			Name:  info.CustomerName,
			Phone: info.CustomerPhone,
		},
		Items:     items,
		Shipping:  info.Shipping,
		Subtotal:  subtotal,
		Total:     subtotal,
		Currency:  info.Currency,
		Metadata:  info.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if info.AmountSubtotal > 0 {
		order.Subtotal = info.AmountSubtotal
	}
	if info.AmountTotal > 0 {
		order.Total = info.AmountTotal
	}

	if err := s.Orders.Save(ctx, order); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	log.Printf("webhook: recorded order %s for session %s (%s)", order.OrderID, e.SessionID, status)

	if s.Mailer != nil && order.Customer.Email != "" {
		if err := s.Mailer.SendOrderConfirmation(ctx, order); err != nil {
			log.Printf("webhook: confirmation email for %s failed: %v", order.OrderID, err)
		}
	}
	return nil
}

func (s *WebhookService) upsertSubscription(ctx context.Context, e model.SubscriptionChangedEvent) error {
	existing, err := s.Subscriptions.GetByStripeID(ctx, e.StripeSubscriptionID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	sub := existing
	if sub == nil {
		sub = &model.Subscription{
			SubscriptionID:       newSubscriptionID(now),
			StripeSubscriptionID: e.StripeSubscriptionID,
			CreatedAt:            now,
		}
	}

	sub.StripeCustomerID = e.StripeCustomerID
	sub.Status = e.Status
	sub.Amount = e.Amount
	sub.Currency = e.Currency
	sub.Interval = e.Interval
	sub.IntervalCount = e.IntervalCount
	sub.CurrentPeriodStart = e.CurrentPeriodStart
	sub.CurrentPeriodEnd = e.CurrentPeriodEnd
	sub.TrialEnd = e.TrialEnd
	sub.UpdatedAt = now

	return s.Subscriptions.Save(ctx, sub)
}

func (s *WebhookService) cancelSubscription(ctx context.Context, e model.SubscriptionDeletedEvent) error {
	existing, err := s.Subscriptions.GetByStripeID(ctx, e.StripeSubscriptionID)
	if err != nil {
		return err
	}
	if existing == nil {
		log.Printf("webhook: deleted subscription %s was never recorded", e.StripeSubscriptionID)
		return nil
	}

	canceledAt := e.CanceledAt
	existing.Status = model.SubscriptionStatusCanceled
	existing.CanceledAt = &canceledAt
	existing.UpdatedAt = time.Now().UTC()
	return s.Subscriptions.Save(ctx, existing)
}

// Generated ids are practically unique (timestamp + random suffix);
// collision is not actively checked.
func newOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}

func newSubscriptionID(now time.Time) string {
	return fmt.Sprintf("SUB-%d-%s", now.UnixMilli(), uuid.NewString()[:8])
}
