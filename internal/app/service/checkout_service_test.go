package service

import (
	"context"
	"testing"

	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckoutServiceTest(t *testing.T) (*stubBackend, CheckoutService, session.Store) {
	backend := newStubBackend(t)
	backend.products = testCatalog()

	store := session.NewMemoryStore()
	return backend, NewCheckoutService(backend.client(t), store), store
}

func checkoutFixture() ([]model.CartItem, model.AddressBook) {
	catalog := testCatalog()
	items := []model.CartItem{
		{Product: catalog[0], Qty: 1}, // 50
		{Product: catalog[1], Qty: 1}, // 100
	}
	book := model.AddressBook{
		Entries:    []model.Address{{ID: "addr-1", Text: "221B Baker Street"}},
		SelectedID: "addr-1",
	}
	return items, book
}

func TestCheckoutService_Validate_Order(t *testing.T) {
	_, checkoutService, _ := setupCheckoutServiceTest(t)
	items, book := checkoutFixture() // total 150

	// Balance is checked first, even when the address book is also bad
	err := checkoutService.Validate(items, model.AddressBook{}, 50)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	err = checkoutService.Validate(items, model.AddressBook{}, 500)
	assert.ErrorIs(t, err, ErrNoAddress)

	noSelection := model.AddressBook{Entries: book.Entries}
	err = checkoutService.Validate(items, noSelection, 500)
	assert.ErrorIs(t, err, ErrNoAddressSelected)

	err = checkoutService.Validate(items, book, 500)
	assert.NoError(t, err)
}

func TestCheckoutService_Validate_ExactBalancePasses(t *testing.T) {
	_, checkoutService, _ := setupCheckoutServiceTest(t)
	items, book := checkoutFixture() // total 150

	assert.NoError(t, checkoutService.Validate(items, book, 150))
	assert.ErrorIs(t, checkoutService.Validate(items, book, 149), ErrInsufficientBalance)
}

func TestCheckoutService_PlaceOrder_LocalSettlement(t *testing.T) {
	backend, checkoutService, store := setupCheckoutServiceTest(t)
	items, book := checkoutFixture() // total 150

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 500}
	require.NoError(t, store.Put(context.Background(), "sid", sess))

	balance, err := checkoutService.PlaceOrder(context.Background(), "sid", sess, items, book)
	require.NoError(t, err)
	assert.Equal(t, 350, balance)
	assert.Equal(t, 1, backend.checkoutPosts)

	// The settled balance is persisted
	stored, err := store.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, 350, stored.Balance)
}

func TestCheckoutService_PlaceOrder_PrefersServerBalance(t *testing.T) {
	backend, checkoutService, store := setupCheckoutServiceTest(t)
	items, book := checkoutFixture() // total 150

	// The backend reports its own post-checkout balance, which differs
	// from the local deduction; the server number wins.
	backend.reportBalance = true
	backend.balance = 4242

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 500}
	require.NoError(t, store.Put(context.Background(), "sid", sess))

	balance, err := checkoutService.PlaceOrder(context.Background(), "sid", sess, items, book)
	require.NoError(t, err)
	assert.Equal(t, 4242, balance)

	stored, err := store.Get(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, 4242, stored.Balance)
}

func TestCheckoutService_PlaceOrder_ValidationShortCircuits(t *testing.T) {
	backend, checkoutService, store := setupCheckoutServiceTest(t)
	items, book := checkoutFixture() // total 150

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 100}
	require.NoError(t, store.Put(context.Background(), "sid", sess))

	_, err := checkoutService.PlaceOrder(context.Background(), "sid", sess, items, book)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// No settlement attempt and no balance change
	assert.Equal(t, 0, backend.checkoutPosts)
	stored, _ := store.Get(context.Background(), "sid")
	assert.Equal(t, 100, stored.Balance)
}

func TestCheckoutService_PlaceOrder_RequiresAuth(t *testing.T) {
	_, checkoutService, _ := setupCheckoutServiceTest(t)
	items, book := checkoutFixture()

	_, err := checkoutService.PlaceOrder(context.Background(), "sid", &session.Session{}, items, book)
	assert.ErrorIs(t, err, ErrAuthRequired)
}
