package service

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/stretchr/testify/require"
)

// stubBackend is an in-memory stand-in for the QKart backend used by the
// service tests. It implements the handful of routes the client calls
// and counts hits so tests can assert on round trips.
type stubBackend struct {
	mu sync.Mutex

	products  []model.Product
	records   []model.CartRecord
	addresses []model.Address
	users     map[string]string
	balance   int

	// reportBalance makes checkout include the post-checkout balance in
	// its response, the way newer backend versions do.
	reportBalance bool

	// searchDelay stalls search responses for delayQuery, simulating a
	// slow in-flight query overtaken by a newer one.
	searchDelay time.Duration
	delayQuery  string

	cartPosts     int
	checkoutPosts int
	searchCalls   []string

	srv *httptest.Server
}

func newStubBackend(t *testing.T) *stubBackend {
	b := &stubBackend{
		users:   map[string]string{"crio-user": "learnbydoing"},
		balance: 5000,
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *stubBackend) client(t *testing.T) *api.Client {
	client, err := api.NewClient(api.Config{
		Endpoint: b.srv.URL,
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

func (b *stubBackend) searchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.searchCalls)
}

func (b *stubBackend) lastSearch() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.searchCalls) == 0 {
		return ""
	}
	return b.searchCalls[len(b.searchCalls)-1]
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

func (b *stubBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/products":
		writeJSON(w, http.StatusOK, b.products)

	case r.Method == http.MethodGet && r.URL.Path == "/products/search":
		value := r.URL.Query().Get("value")
		b.searchCalls = append(b.searchCalls, value)

		if b.searchDelay > 0 && value == b.delayQuery {
			delay := b.searchDelay
			b.mu.Unlock()
			time.Sleep(delay)
			b.mu.Lock()
		}

		matches := []model.Product{}
		for _, p := range b.products {
			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(value)) {
				matches = append(matches, p)
			}
		}
		if len(matches) == 0 {
			writeFailure(w, http.StatusNotFound, "No products found")
			return
		}
		writeJSON(w, http.StatusOK, matches)

	case r.Method == http.MethodGet && r.URL.Path == "/cart":
		if !b.authorized(r) {
			writeFailure(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
			return
		}
		writeJSON(w, http.StatusOK, b.records)

	case r.Method == http.MethodPost && r.URL.Path == "/cart":
		b.cartPosts++
		if !b.authorized(r) {
			writeFailure(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
			return
		}
		var req struct {
			ProductID string `json:"productId"`
			Qty       int    `json:"qty"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		b.upsert(req.ProductID, req.Qty)
		writeJSON(w, http.StatusOK, b.records)

	case r.Method == http.MethodPost && r.URL.Path == "/cart/checkout":
		b.checkoutPosts++
		if !b.authorized(r) {
			writeFailure(w, http.StatusUnauthorized, "Protected route, Oauth2 Bearer token not found")
			return
		}
		resp := map[string]interface{}{"success": true}
		if b.reportBalance {
			resp["balance"] = b.balance
		}
		b.records = []model.CartRecord{}
		writeJSON(w, http.StatusOK, resp)

	case r.Method == http.MethodGet && r.URL.Path == "/user/addresses":
		writeJSON(w, http.StatusOK, b.addresses)

	case r.Method == http.MethodPost && r.URL.Path == "/user/addresses":
		var req struct {
			Address string `json:"address"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		b.addresses = append(b.addresses, model.Address{
			ID:   fmt.Sprintf("addr-%d", len(b.addresses)+1),
			Text: req.Address,
		})
		writeJSON(w, http.StatusOK, b.addresses)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/user/addresses/"):
		id := strings.TrimPrefix(r.URL.Path, "/user/addresses/")
		kept := b.addresses[:0]
		for _, a := range b.addresses {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		b.addresses = kept
		writeJSON(w, http.StatusOK, b.addresses)

	case r.Method == http.MethodPost && r.URL.Path == "/auth/login":
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		password, ok := b.users[req.Username]
		if !ok {
			writeFailure(w, http.StatusBadRequest, "Username is not registered. Register first.")
			return
		}
		if password != req.Password {
			writeFailure(w, http.StatusBadRequest, "Password is incorrect")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success":  true,
			"token":    "stub-token-" + req.Username,
			"username": req.Username,
			"balance":  b.balance,
		})

	case r.Method == http.MethodPost && r.URL.Path == "/auth/register":
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if _, exists := b.users[req.Username]; exists {
			writeFailure(w, http.StatusConflict, "Username is already taken")
			return
		}
		b.users[req.Username] = req.Password
		writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true})

	default:
		writeFailure(w, http.StatusNotFound, "Not found")
	}
}

func (b *stubBackend) authorized(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ")
}

func (b *stubBackend) upsert(productID string, qty int) {
	for i, rec := range b.records {
		if rec.ProductID == productID {
			if qty == 0 {
				b.records = append(b.records[:i], b.records[i+1:]...)
				return
			}
			b.records[i].Qty = qty
			return
		}
	}
	if qty > 0 {
		b.records = append(b.records, model.CartRecord{ProductID: productID, Qty: qty})
	}
}

// testCatalog is the product fixture shared by the service tests.
func testCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "UNIFACTOR Mens Running Shoes", Category: "Fashion", Cost: 50, Rating: 5, Image: "shoes.png"},
		{ID: "p2", Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 100, Rating: 5, Image: "racquet.png"},
		{ID: "p3", Name: "Tan Leatherette Weekender Duffle", Category: "Fashion", Cost: 150, Rating: 4, Image: "duffle.png"},
	}
}
