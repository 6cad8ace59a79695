package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"StorefrontAPI/internal/model"
)

// SubscriptionFileRepository persists one JSON file per subscription,
// keyed by filename = subscription id.
type SubscriptionFileRepository struct {
	dir string
}

func NewSubscriptionFileRepository(dir string) (*SubscriptionFileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create subscriptions dir: %w", err)
	}
	return &SubscriptionFileRepository{dir: dir}, nil
}

func (r *SubscriptionFileRepository) GetByID(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	if subscriptionID == "" || strings.ContainsAny(subscriptionID, "/\\") {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(r.dir, subscriptionID+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var s model.Subscription
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode subscription %s: %w", subscriptionID, err)
	}
	return &s, nil
}

// GetByStripeID scans for the record mirroring an external subscription;
// one record exists per external subscription id.
func (r *SubscriptionFileRepository) GetByStripeID(ctx context.Context, stripeSubscriptionID string) (*model.Subscription, error) {
	if stripeSubscriptionID == "" {
		return nil, nil
	}

	subs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].StripeSubscriptionID == stripeSubscriptionID {
			return &subs[i], nil
		}
	}
	return nil, nil
}

func (r *SubscriptionFileRepository) List(ctx context.Context) ([]model.Subscription, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	subs := make([]model.Subscription, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			log.Printf("subscriptions: skipping unreadable record %s: %v", e.Name(), err)
			continue
		}
		var s model.Subscription
		if err := json.Unmarshal(data, &s); err != nil {
			log.Printf("subscriptions: skipping malformed record %s: %v", e.Name(), err)
			continue
		}
		subs = append(subs, s)
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})
	return subs, nil
}

func (r *SubscriptionFileRepository) Save(ctx context.Context, sub *model.Subscription) error {
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("encode subscription %s: %w", sub.SubscriptionID, err)
	}
	return os.WriteFile(filepath.Join(r.dir, sub.SubscriptionID+".json"), data, 0o644)
}
