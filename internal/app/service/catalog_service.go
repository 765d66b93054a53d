package service

import (
	"context"
	"sync"

	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/pkg/logger"
)

// CatalogService owns the full product list for the session. The cache
// is fetched once at startup, refreshed in the background, and read by
// the cart reconciler. Search results only ever replace the catalog
// view, never the cache and never the cart.
type CatalogService interface {
	// Refresh fetches the full catalog from the backend and replaces the
	// cached snapshot.
	Refresh(ctx context.Context) error

	// Snapshot returns the cached catalog. The returned slice is a copy
	// and safe to hold across refreshes.
	Snapshot() []model.Product

	// Loaded reports whether a catalog fetch has succeeded yet.
	Loaded() bool

	// Search runs a remote catalog search. An empty result is a valid
	// state ("no products found"), distinct from an error.
	Search(ctx context.Context, text string) ([]model.Product, error)
}

type catalogService struct {
	client *api.Client

	mu       sync.RWMutex
	products []model.Product
	loaded   bool
}

func NewCatalogService(client *api.Client) CatalogService {
	return &catalogService{client: client}
}

func (s *catalogService) Refresh(ctx context.Context) error {
	logger.Debug("Refreshing product catalog", nil)

	products, err := s.client.Products(ctx)
	if err != nil {
		logger.Error("Failed to refresh product catalog", err, nil)
		return err
	}

	s.mu.Lock()
	s.products = products
	s.loaded = true
	s.mu.Unlock()

	logger.Info("Product catalog refreshed", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (s *catalogService) Snapshot() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *catalogService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *catalogService) Search(ctx context.Context, text string) ([]model.Product, error) {
	logger.Debug("Searching product catalog", map[string]interface{}{
		"query": text,
	})

	products, err := s.client.SearchProducts(ctx, text)
	if err != nil {
		logger.Error("Catalog search failed", err, map[string]interface{}{
			"query": text,
		})
		return nil, err
	}

	logger.Info("Catalog search completed", map[string]interface{}{
		"query": text,
		"count": len(products),
	})
	return products, nil
}
