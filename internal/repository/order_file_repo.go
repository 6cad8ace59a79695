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

// OrderFileRepository persists one JSON file per order, keyed by
// filename = order id. Distinct ids write distinct files, so concurrent
// writes to different orders are safe; the same id is not guarded.
type OrderFileRepository struct {
	dir string
}

func NewOrderFileRepository(dir string) (*OrderFileRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create orders dir: %w", err)
	}
	return &OrderFileRepository{dir: dir}, nil
}

func (r *OrderFileRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	if orderID == "" || strings.ContainsAny(orderID, "/\\") {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(r.dir, orderID+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var o model.Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", orderID, err)
	}
	return &o, nil
}

// GetBySessionID scans the store for the order correlated to a checkout
// session; this is the idempotency-gate lookup.
func (r *OrderFileRepository) GetBySessionID(ctx context.Context, sessionID string) (*model.Order, error) {
	if sessionID == "" {
		return nil, nil
	}

	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if orders[i].StripeSessionID == sessionID {
			return &orders[i], nil
		}
	}
	return nil, nil
}

// List aggregates every record file, newest first; malformed records are
// skipped rather than aborting the whole read.
func (r *OrderFileRepository) List(ctx context.Context) ([]model.Order, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			log.Printf("orders: skipping unreadable record %s: %v", e.Name(), err)
			continue
		}
		var o model.Order
		if err := json.Unmarshal(data, &o); err != nil {
			log.Printf("orders: skipping malformed record %s: %v", e.Name(), err)
			continue
		}
		orders = append(orders, o)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *OrderFileRepository) Save(ctx context.Context, order *model.Order) error {
	data, err := json.MarshalIndent(order, "", "  ")
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.OrderID, err)
	}
	return os.WriteFile(filepath.Join(r.dir, order.OrderID+".json"), data, 0o644)
}
