// Package cart holds the client-owned cart state: an ordered item list plus
// a UI-open flag, mutated by reducer-style operations and persisted through a
// pluggable Storage after every mutation.
//
// The store is meant for a single owner (the browser session it represents);
// there is no concurrent-mutation contract beyond replacing the whole list on
// each action.
package cart

import "StorefrontAPI/internal/model"

type Store struct {
	storage Storage
	items   []model.CartItem
	open    bool
}

// NewStore rehydrates from storage if state is present; corrupt or
// unreadable storage starts an empty cart, never an error.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}
	if storage != nil {
		if items, err := storage.Load(); err == nil && items != nil {
			s.items = items
		}
	}
	return s
}

// AddItem merges quantity into an existing (slug, variant) entry in place,
// preserving first-insertion order, or appends a new entry.
func (s *Store) AddItem(p model.Product, qty int, variantID string) error {
	if qty < 1 {
		qty = 1
	}
	for i := range s.items {
		if s.items[i].Matches(p.Slug, variantID) {
			s.items[i].Quantity += qty
			return s.persist()
		}
	}
	s.items = append(s.items, model.CartItem{
		Product:   p,
		Quantity:  qty,
		VariantID: variantID,
	})
	return s.persist()
}

// UpdateQuantity replaces the quantity of the matching entry; qty <= 0
// behaves as RemoveItem.
func (s *Store) UpdateQuantity(slug string, qty int, variantID string) error {
	if qty <= 0 {
		return s.RemoveItem(slug, variantID)
	}
	for i := range s.items {
		if s.items[i].Matches(slug, variantID) {
			s.items[i].Quantity = qty
			break
		}
	}
	return s.persist()
}

func (s *Store) RemoveItem(slug, variantID string) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.Matches(slug, variantID) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.persist()
}

// Clear empties the item list; the open flag is untouched.
func (s *Store) Clear() error {
	s.items = nil
	return s.persist()
}

func (s *Store) Items() []model.CartItem {
	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount and Subtotal are derived on every call, never cached.
func (s *Store) ItemCount() int {
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) Subtotal() float64 {
	var total float64
	for _, it := range s.items {
		total += it.Product.Pricing.Price * float64(it.Quantity)
	}
	return total
}

func (s *Store) Response() *model.CartResponse {
	return &model.CartResponse{
		Items:     s.Items(),
		ItemCount: s.ItemCount(),
		Subtotal:  s.Subtotal(),
	}
}

func (s *Store) Open()        { s.open = true }
func (s *Store) Close()       { s.open = false }
func (s *Store) IsOpen() bool { return s.open }

func (s *Store) persist() error {
	if s.storage == nil {
		return nil
	}
	return s.storage.Save(s.Items())
}
