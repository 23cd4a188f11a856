package products

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vaulta/vaulta/internal/listing"
	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
)

var searchFields = []listing.StringField[Product]{
	func(p Product) string { return p.Name },
}

var sortFields = listing.SortFields[Product]{
	Strings: map[string]listing.StringField[Product]{
		"name": func(p Product) string { return p.Name },
		"date": func(p Product) string { return p.CreatedAt.Format("2006-01-02 15:04:05") },
	},
	Numbers: map[string]listing.NumberField[Product]{
		"price": func(p Product) float64 { return p.Price.InexactFloat64() },
		"stock": func(p Product) float64 { return float64(p.Stock) },
		"sales": func(p Product) float64 { return float64(p.Sales) },
	},
}

// Service composes the cached product collection with list shaping and
// write-through mutations.
type Service struct {
	repo  Repository
	cache *querycache.Cache[[]Product]
}

// NewService constructs the products service.
func NewService(repo Repository, cache *querycache.Cache[[]Product]) *Service {
	return &Service{repo: repo, cache: cache}
}

func cacheKey(userID string) string {
	return "products:" + userID
}

// List returns the shaped product page for the user.
func (s *Service) List(ctx context.Context, userID string, query shared.ListQuery) (listing.Page[Product], error) {
	collection, err := s.cache.Fetch(ctx, cacheKey(userID), func(ctx context.Context) ([]Product, error) {
		return s.repo.List(ctx, userID)
	})
	if err != nil {
		return listing.Page[Product]{}, fmt.Errorf("load products: %w", err)
	}
	return listing.View(collection, query, searchFields, sortFields), nil
}

// Create stores a new product and prepends it to the cached collection.
func (s *Service) Create(ctx context.Context, userID string, req CreateProductRequest) (*Product, error) {
	product := Product{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      req.Name,
		ImageURLs: req.ImageURLs,
		Price:     req.Price,
		Stock:     req.Stock,
		Sales:     req.Sales,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.cache.Patch(cacheKey(userID), func(collection []Product) []Product {
		return append([]Product{product}, collection...)
	})
	return &product, nil
}

// Update applies a partial update and replaces the record in the cached
// collection by id.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateProductRequest) (*Product, error) {
	existing, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.ImageURLs != nil {
		existing.ImageURLs = req.ImageURLs
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}
	if req.Stock != nil {
		existing.Stock = *req.Stock
	}
	if req.Sales != nil {
		existing.Sales = *req.Sales
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.cache.Patch(cacheKey(userID), func(collection []Product) []Product {
		updated := make([]Product, len(collection))
		for i, item := range collection {
			if item.ID == id {
				updated[i] = *existing
			} else {
				updated[i] = item
			}
		}
		return updated
	})
	return existing, nil
}

// Delete removes the product and drops it from the cached collection.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.Patch(cacheKey(userID), func(collection []Product) []Product {
		remaining := make([]Product, 0, len(collection))
		for _, item := range collection {
			if item.ID != id {
				remaining = append(remaining, item)
			}
		}
		return remaining
	})
	return nil
}
