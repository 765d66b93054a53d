package service

import (
	"context"
	"errors"

	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/internal/session"
	"github.com/qkart/storefront/pkg/logger"
)

var (
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrNoAddress           = errors.New("no address on file")
	ErrNoAddressSelected   = errors.New("no address selected")
)

// CheckoutService validates and settles a checkout transaction against
// the wallet balance and the address book.
type CheckoutService interface {
	// Validate runs the ordered precondition chain: balance, address
	// existence, address selection. The first failing check wins.
	Validate(items []model.CartItem, book model.AddressBook, balance int) error

	// PlaceOrder validates, submits the checkout request and settles the
	// wallet. On success the session balance is updated and persisted
	// and the new balance returned. On any failure the session is left
	// untouched.
	PlaceOrder(ctx context.Context, sid string, sess *session.Session, items []model.CartItem, book model.AddressBook) (int, error)
}

type checkoutService struct {
	client *api.Client
	store  session.Store
}

func NewCheckoutService(client *api.Client, store session.Store) CheckoutService {
	return &checkoutService{client: client, store: store}
}

func (s *checkoutService) Validate(items []model.CartItem, book model.AddressBook, balance int) error {
	if balance < ComputeTotal(items) {
		return ErrInsufficientBalance
	}
	if len(book.Entries) == 0 {
		return ErrNoAddress
	}
	if book.SelectedID == "" {
		return ErrNoAddressSelected
	}
	return nil
}

func (s *checkoutService) PlaceOrder(ctx context.Context, sid string, sess *session.Session, items []model.CartItem, book model.AddressBook) (int, error) {
	if !sess.Authenticated() {
		logger.Warn("Checkout rejected: no session token", nil)
		return 0, ErrAuthRequired
	}

	total := ComputeTotal(items)

	if err := s.Validate(items, book, sess.Balance); err != nil {
		logger.Warn("Checkout validation failed", map[string]interface{}{
			"total":   total,
			"balance": sess.Balance,
			"reason":  err.Error(),
		})
		return 0, err
	}

	logger.Info("Settling checkout", map[string]interface{}{
		"total":      total,
		"address_id": book.SelectedID,
		"items":      len(items),
	})

	resp, err := s.client.Checkout(ctx, sess.Token, book.SelectedID)
	if err != nil {
		logger.Error("Checkout settlement failed", err, map[string]interface{}{
			"address_id": book.SelectedID,
		})
		return 0, err
	}

	// Prefer the backend's authoritative post-checkout balance; fall
	// back to the local integer deduction for backends that omit it.
	newBalance := sess.Balance - total
	if resp.Balance != nil {
		newBalance = *resp.Balance
	}

	sess.Balance = newBalance
	if err := s.store.Put(ctx, sid, sess); err != nil {
		logger.Error("Failed to persist settled balance", err, map[string]interface{}{
			"balance": newBalance,
		})
		return 0, err
	}

	logger.Info("Order placed", map[string]interface{}{
		"total":   total,
		"balance": newBalance,
	})
	return newBalance, nil
}
