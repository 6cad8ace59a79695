package repository

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"StorefrontAPI/internal/model"
)

// ProductRepository reads product records from a directory of JSON files,
// one file per slug.
type ProductRepository struct {
	dir string
}

func NewProductRepository(dir string) *ProductRepository {
	return &ProductRepository{dir: dir}
}

// GetBySlug returns (nil, nil) for an unknown slug. Slugs containing path
// separators are rejected outright.
func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	if slug == "" || strings.ContainsAny(slug, "/\\") || strings.Contains(slug, "..") {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(r.dir, slug+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Slug == "" {
		p.Slug = slug
	}
	return &p, nil
}

// ListAll aggregates every product file; malformed records are skipped.
func (r *ProductRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Product{}, nil
		}
		return nil, err
	}

	products := make([]model.Product, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, e.Name()))
		if err != nil {
			log.Printf("products: skipping unreadable record %s: %v", e.Name(), err)
			continue
		}
		var p model.Product
		if err := json.Unmarshal(data, &p); err != nil {
			log.Printf("products: skipping malformed record %s: %v", e.Name(), err)
			continue
		}
		if p.Slug == "" {
			p.Slug = strings.TrimSuffix(e.Name(), ".json")
		}
		products = append(products, p)
	}
	return products, nil
}
