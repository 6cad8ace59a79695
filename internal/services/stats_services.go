package services

import (
	"context"
	"time"

	"StorefrontAPI/internal/model"
	"StorefrontAPI/internal/repository"
)

// StatsService derives dashboard figures over the full record set on each
// request; nothing is cached.
type StatsService struct {
	Orders        repository.OrderRepository
	Subscriptions repository.SubscriptionRepository
}

func NewStatsService(orders repository.OrderRepository, subs repository.SubscriptionRepository) *StatsService {
	return &StatsService{
		Orders:        orders,
		Subscriptions: subs,
	}
}

// OrderStats counts every order but sums revenue over paid orders only.
func (s *StatsService) OrderStats(ctx context.Context) (*model.OrderStats, error) {
	orders, err := s.Orders.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.OrderStats{TotalOrders: len(orders)}
	cutoff := time.Now().AddDate(0, 0, -30)
	paid := 0
	for _, o := range orders {
		if o.Status != model.OrderStatusPaid {
			continue
		}
		paid++
		stats.TotalRevenue += o.Total
		if o.CreatedAt.After(cutoff) {
			stats.RevenueLast30Days += o.Total
		}
	}
	if paid > 0 {
		stats.AverageOrderValue = stats.TotalRevenue / int64(paid)
	}
	return stats, nil
}

// SubscriptionStats normalizes every active/trialing subscription to a
// monthly amount for MRR; ARR is MRR x 12.
func (s *StatsService) SubscriptionStats(ctx context.Context) (*model.SubscriptionStats, error) {
	subs, err := s.Subscriptions.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.SubscriptionStats{
		ByStatus: map[model.SubscriptionStatus]int{},
	}
	for _, sub := range subs {
		stats.ByStatus[sub.Status]++
		if sub.Status != model.SubscriptionStatusActive && sub.Status != model.SubscriptionStatusTrialing {
			continue
		}
		stats.ActiveCount++
		stats.MRR += monthlyAmount(sub)
	}
	stats.ARR = stats.MRR * 12
	return stats, nil
}

func monthlyAmount(sub model.Subscription) int64 {
	count := sub.IntervalCount
	if count < 1 {
		count = 1
	}
	if sub.Interval == "year" {
		return sub.Amount / (12 * count)
	}
	return sub.Amount / count
}
