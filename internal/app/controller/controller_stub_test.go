package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/api"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/internal/app/service"
	"github.com/qkart/storefront/internal/middleware"
	"github.com/qkart/storefront/internal/session"
	"github.com/stretchr/testify/require"
)

// backendStub fakes the QKart backend routes the controller tests reach.
type backendStub struct {
	mu sync.Mutex

	products  []model.Product
	records   []model.CartRecord
	addresses []model.Address

	cartPosts     int
	checkoutPosts int

	srv *httptest.Server
}

func newBackendStub(t *testing.T) *backendStub {
	b := &backendStub{
		products: []model.Product{
			{ID: "p1", Name: "UNIFACTOR Mens Running Shoes", Category: "Fashion", Cost: 10, Rating: 5, Image: "shoes.png"},
			{ID: "p2", Name: "YONEX Smash Badminton Racquet", Category: "Sports", Cost: 5, Rating: 5, Image: "racquet.png"},
		},
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backendStub) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/products":
		json.NewEncoder(w).Encode(b.products)

	case r.Method == http.MethodGet && r.URL.Path == "/cart":
		json.NewEncoder(w).Encode(b.records)

	case r.Method == http.MethodPost && r.URL.Path == "/cart":
		b.cartPosts++
		var req struct {
			ProductID string `json:"productId"`
			Qty       int    `json:"qty"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		b.upsert(req.ProductID, req.Qty)
		json.NewEncoder(w).Encode(b.records)

	case r.Method == http.MethodPost && r.URL.Path == "/cart/checkout":
		b.checkoutPosts++
		b.records = []model.CartRecord{}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})

	case r.Method == http.MethodGet && r.URL.Path == "/user/addresses":
		json.NewEncoder(w).Encode(b.addresses)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/user/addresses/"):
		id := strings.TrimPrefix(r.URL.Path, "/user/addresses/")
		kept := b.addresses[:0]
		for _, a := range b.addresses {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		b.addresses = kept
		json.NewEncoder(w).Encode(b.addresses)

	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Not found",
		})
	}
}

func (b *backendStub) upsert(productID string, qty int) {
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

func (b *backendStub) client(t *testing.T) *api.Client {
	client, err := api.NewClient(api.Config{
		Endpoint: b.srv.URL,
		Timeout:  5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

// testServices wires real services against the stub backend with a warm
// catalog, the way main does.
func testServices(t *testing.T, backend *backendStub) (service.CartService, service.AddressService, service.CheckoutService, session.Store) {
	client := backend.client(t)

	catalogService := service.NewCatalogService(client)
	require.NoError(t, catalogService.Refresh(context.Background()))

	store := session.NewMemoryStore()
	cartService := service.NewCartService(client, catalogService)
	addressService := service.NewAddressService(client)
	checkoutService := service.NewCheckoutService(client, store)

	return cartService, addressService, checkoutService, store
}

// Helper to set session state in context the way the session middleware does
func setSessionInContext(c *gin.Context, sid string, sess *session.Session) {
	c.Set(middleware.SessionIDKey, sid)
	c.Set(middleware.SessionKey, sess)
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
