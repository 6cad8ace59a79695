package services

import (
	"context"
	"log"
	"sort"

	"StorefrontAPI/internal/model"
)

// ProductSource is the catalog read contract; satisfied by
// repository.ProductRepository.
type ProductSource interface {
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListAll(ctx context.Context) ([]model.Product, error)
}

type CatalogService struct {
	Products ProductSource
	Provider CatalogProvider // optional; nil disables the overlay
}

func NewCatalogService(products ProductSource, provider CatalogProvider) *CatalogService {
	return &CatalogService{
		Products: products,
		Provider: provider,
	}
}

// GetProduct returns the local record, overlaid with live name/images/price
// from the provider catalog when the record references a catalog product for
// the current key mode. The local description is always preserved, and a
// failed overlay falls back to local data without surfacing the error.
func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*model.Product, error) {
	p, err := s.Products.GetBySlug(ctx, slug)
	if err != nil || p == nil {
		return p, err
	}

	if s.Provider == nil {
		return p, nil
	}
	catalogID := p.CatalogID(s.Provider.TestMode())
	if catalogID == "" {
		return p, nil
	}

	live, err := s.Provider.GetCatalogProduct(ctx, catalogID)
	if err != nil || live == nil {
		if err != nil {
			log.Printf("catalog: overlay failed for %s, using local record: %v", slug, err)
		}
		return p, nil
	}

	if live.Name != "" {
		p.Name = live.Name
	}
	if len(live.Images) > 0 {
		p.Images = live.Images
	}
	if live.UnitAmount > 0 {
		p.Pricing.Price = float64(live.UnitAmount) / 100
		if live.Currency != "" {
			p.Pricing.Currency = live.Currency
		}
	}
	return p, nil
}

// GetActiveProducts filters to status=active and not unlisted.
func (s *CatalogService) GetActiveProducts(ctx context.Context) ([]model.Product, error) {
	all, err := s.Products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]model.Product, 0, len(all))
	for _, p := range all {
		if p.Status == model.ProductStatusActive && !p.Unlisted {
			active = append(active, p)
		}
	}
	return active, nil
}

// GetProductCategories returns the sorted unique categories of listed
// active products.
func (s *CatalogService) GetProductCategories(ctx context.Context) ([]string, error) {
	active, err := s.GetActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var categories []string
	for _, p := range active {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// GetByAccessCode resolves an unlisted product by its access code, which is
// the exact slug. Listed or non-active products are not reachable this way.
func (s *CatalogService) GetByAccessCode(ctx context.Context, code string) (*model.Product, error) {
	p, err := s.GetProduct(ctx, code)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.Unlisted || p.Status != model.ProductStatusActive {
		return nil, nil
	}
	return p, nil
}
