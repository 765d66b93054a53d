package service

import (
	"context"
	"errors"
	"sync"

	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/pkg/logger"
)

var (
	ErrAuthRequired  = errors.New("login required")
	ErrDuplicateItem = errors.New("item already in cart")
)

// Reconcile joins the sparse server-held cart records against the
// catalog to produce display-ready cart items. A nil record list means
// "no cart yet" and yields nil, preserving the caller-visible
// distinction from a loaded, empty cart. Output order equals record
// order; the record quantity wins on the merge. A record with no catalog
// match produces a degenerate item flagged Missing rather than an error:
// the cart stays renderable while the catalog catches up.
func Reconcile(records []model.CartRecord, catalog []model.Product) []model.CartItem {
	if records == nil {
		return nil
	}

	index := make(map[string]model.Product, len(catalog))
	for _, p := range catalog {
		index[p.ID] = p
	}

	items := make([]model.CartItem, 0, len(records))
	for _, rec := range records {
		product, ok := index[rec.ProductID]
		if !ok {
			logger.Warn("Cart record has no catalog match", map[string]interface{}{
				"product_id": rec.ProductID,
			})
			items = append(items, model.CartItem{
				Product: model.Product{ID: rec.ProductID},
				Qty:     rec.Qty,
				Missing: true,
			})
			continue
		}
		items = append(items, model.CartItem{Product: product, Qty: rec.Qty})
	}
	return items
}

// ComputeTotal returns the cart value: cost times quantity summed over
// all items. Zero-quantity items stay in the sum and contribute zero;
// they are filtered at render time, not here.
func ComputeTotal(items []model.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Cost * item.Qty
	}
	return total
}

// recordInCart reports whether the product already has a live record.
func recordInCart(records []model.CartRecord, productID string) bool {
	for _, rec := range records {
		if rec.ProductID == productID && rec.Qty > 0 {
			return true
		}
	}
	return false
}

// MutateOptions controls the duplicate policy for one mutation.
// PreventDuplicate is set only by "add new item" entry points; the
// increment and decrement controls on an existing line never set it.
type MutateOptions struct {
	PreventDuplicate bool
}

// CartService wraps cart reads and the quantity mutation protocol.
// Every mutation round-trips through the backend and re-reconciles from
// the authoritative response; the previous item list is never patched
// locally.
type CartService interface {
	// Records fetches the raw server-held cart record list.
	Records(ctx context.Context, token string) ([]model.CartRecord, error)

	// Fetch fetches the cart and reconciles it against the catalog.
	Fetch(ctx context.Context, token string) ([]model.CartItem, error)

	// Mutate sets the quantity for one product. newQty 0 means "remove";
	// the backend decides whether the record disappears or stays at
	// zero. On failure the caller's previous item list remains valid.
	Mutate(ctx context.Context, token string, current []model.CartRecord, productID string, newQty int, opts MutateOptions) ([]model.CartItem, error)
}

type cartService struct {
	client  *api.Client
	catalog CatalogService

	// Per-cart mutation locks. Two concurrent mutations for the same
	// cart would race at the backend with the later arrival winning;
	// serializing them keeps "last write observed" equal to "last write
	// issued".
	locks sync.Map // token -> *sync.Mutex
}

func NewCartService(client *api.Client, catalog CatalogService) CartService {
	return &cartService{client: client, catalog: catalog}
}

func (s *cartService) lockFor(token string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(token, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *cartService) Records(ctx context.Context, token string) ([]model.CartRecord, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	records, err := s.client.Cart(ctx, token)
	if err != nil {
		logger.Error("Failed to fetch cart records", err, nil)
		return nil, err
	}
	return records, nil
}

func (s *cartService) Fetch(ctx context.Context, token string) ([]model.CartItem, error) {
	records, err := s.Records(ctx, token)
	if err != nil {
		return nil, err
	}

	items := Reconcile(records, s.catalog.Snapshot())
	logger.Debug("Cart fetched and reconciled", map[string]interface{}{
		"records": len(records),
		"items":   len(items),
	})
	return items, nil
}

func (s *cartService) Mutate(ctx context.Context, token string, current []model.CartRecord, productID string, newQty int, opts MutateOptions) ([]model.CartItem, error) {
	if token == "" {
		logger.Warn("Cart mutation rejected: no session token", map[string]interface{}{
			"product_id": productID,
		})
		return nil, ErrAuthRequired
	}

	if opts.PreventDuplicate && recordInCart(current, productID) {
		logger.Warn("Cart mutation rejected: duplicate item", map[string]interface{}{
			"product_id": productID,
		})
		return nil, ErrDuplicateItem
	}

	mu := s.lockFor(token)
	mu.Lock()
	defer mu.Unlock()

	logger.Info("Mutating cart quantity", map[string]interface{}{
		"product_id": productID,
		"qty":        newQty,
	})

	records, err := s.client.UpsertCart(ctx, token, productID, newQty)
	if err != nil {
		logger.Error("Cart mutation failed", err, map[string]interface{}{
			"product_id": productID,
			"qty":        newQty,
		})
		return nil, err
	}

	items := Reconcile(records, s.catalog.Snapshot())
	logger.Info("Cart mutation applied", map[string]interface{}{
		"product_id": productID,
		"qty":        newQty,
		"items":      len(items),
	})
	return items, nil
}
