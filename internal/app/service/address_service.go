package service

import (
	"context"
	"errors"
	"sync"

	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/pkg/logger"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressService tracks the per-session address book: the server-held
// entry list plus the session's selected entry. The backend response is
// always the authoritative entry list; the selection is client state and
// is cleared whenever its entry disappears.
type AddressService interface {
	// Book fetches the entry list and returns the session's book.
	Book(ctx context.Context, sid, token string) (*model.AddressBook, error)

	// Add creates a new address and returns the updated book.
	Add(ctx context.Context, sid, token, text string) (*model.AddressBook, error)

	// Delete removes an address and returns the updated book. Deleting
	// the selected entry clears the selection.
	Delete(ctx context.Context, sid, token, addressID string) (*model.AddressBook, error)

	// Select marks an entry as the shipping address. The entry must be
	// present in the book.
	Select(sid, addressID string) (*model.AddressBook, error)
}

type addressService struct {
	client *api.Client

	mu    sync.Mutex
	books map[string]*model.AddressBook // by session ID
}

func NewAddressService(client *api.Client) AddressService {
	return &addressService{
		client: client,
		books:  make(map[string]*model.AddressBook),
	}
}

// replaceEntries installs the authoritative entry list and drops a
// selection that no longer references an existing entry.
func (s *addressService) replaceEntries(sid string, entries []model.Address) *model.AddressBook {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[sid]
	if !ok {
		book = &model.AddressBook{}
		s.books[sid] = book
	}

	book.Entries = entries
	if book.SelectedID != "" && !book.Contains(book.SelectedID) {
		logger.Debug("Clearing dangling address selection", map[string]interface{}{
			"selected_id": book.SelectedID,
		})
		book.SelectedID = ""
	}

	out := *book
	return &out
}

func (s *addressService) Book(ctx context.Context, sid, token string) (*model.AddressBook, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	entries, err := s.client.Addresses(ctx, token)
	if err != nil {
		logger.Error("Failed to fetch addresses", err, nil)
		return nil, err
	}

	return s.replaceEntries(sid, entries), nil
}

func (s *addressService) Add(ctx context.Context, sid, token, text string) (*model.AddressBook, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	logger.Info("Adding address", map[string]interface{}{
		"length": len(text),
	})

	entries, err := s.client.AddAddress(ctx, token, text)
	if err != nil {
		logger.Error("Failed to add address", err, nil)
		return nil, err
	}

	return s.replaceEntries(sid, entries), nil
}

func (s *addressService) Delete(ctx context.Context, sid, token, addressID string) (*model.AddressBook, error) {
	if token == "" {
		return nil, ErrAuthRequired
	}

	logger.Info("Deleting address", map[string]interface{}{
		"address_id": addressID,
	})

	entries, err := s.client.DeleteAddress(ctx, token, addressID)
	if err != nil {
		logger.Error("Failed to delete address", err, map[string]interface{}{
			"address_id": addressID,
		})
		return nil, err
	}

	return s.replaceEntries(sid, entries), nil
}

func (s *addressService) Select(sid, addressID string) (*model.AddressBook, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[sid]
	if !ok || !book.Contains(addressID) {
		logger.Warn("Address selection rejected: unknown entry", map[string]interface{}{
			"address_id": addressID,
		})
		return nil, ErrAddressNotFound
	}

	book.SelectedID = addressID
	logger.Debug("Address selected", map[string]interface{}{
		"address_id": addressID,
	})

	out := *book
	return &out, nil
}
