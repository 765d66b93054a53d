package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/internal/app/service"
	"github.com/qkart/storefront/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckoutControllerTest(t *testing.T) (*CheckoutController, *gin.Engine, *backendStub, service.AddressService) {
	backend := newBackendStub(t)
	cartService, addressService, checkoutService, _ := testServices(t, backend)
	controller := NewCheckoutController(cartService, addressService, checkoutService)

	return controller, newTestRouter(), backend, addressService
}

func placeOrder(t *testing.T, router *gin.Engine) (*httptest.ResponseRecorder, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	return w, response
}

func TestCheckoutController_PlaceOrder_InsufficientBalance(t *testing.T) {
	controller, router, backend, _ := setupCheckoutControllerTest(t)
	backend.records = []model.CartRecord{{ProductID: "p1", Qty: 2}} // total 20
	backend.addresses = []model.Address{{ID: "addr-1", Text: "221B Baker Street"}}

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 10}
	router.POST("/checkout", func(c *gin.Context) {
		setSessionInContext(c, "sid", sess)
		controller.PlaceOrder(c)
	})

	w, response := placeOrder(t, router)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CHECKOUT_INSUFFICIENT_BALANCE", response["error"])
	assert.Equal(t, "You do not have enough balance in your wallet for this purchase", response["message"])

	// Rejected before any settlement call
	assert.Equal(t, 0, backend.checkoutPosts)
}

func TestCheckoutController_PlaceOrder_NoAddress(t *testing.T) {
	controller, router, backend, _ := setupCheckoutControllerTest(t)
	backend.records = []model.CartRecord{{ProductID: "p1", Qty: 2}}

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 500}
	router.POST("/checkout", func(c *gin.Context) {
		setSessionInContext(c, "sid", sess)
		controller.PlaceOrder(c)
	})

	w, response := placeOrder(t, router)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CHECKOUT_NO_ADDRESS", response["error"])
	assert.Equal(t, "Please add a new address before proceeding.", response["message"])
	assert.Equal(t, 0, backend.checkoutPosts)
}

func TestCheckoutController_PlaceOrder_NoAddressSelected(t *testing.T) {
	controller, router, backend, _ := setupCheckoutControllerTest(t)
	backend.records = []model.CartRecord{{ProductID: "p1", Qty: 2}}
	backend.addresses = []model.Address{{ID: "addr-1", Text: "221B Baker Street"}}

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 500}
	router.POST("/checkout", func(c *gin.Context) {
		setSessionInContext(c, "sid", sess)
		controller.PlaceOrder(c)
	})

	w, response := placeOrder(t, router)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CHECKOUT_NO_ADDRESS_SELECTED", response["error"])
	assert.Equal(t, "Please select one shipping address to proceed.", response["message"])
	assert.Equal(t, 0, backend.checkoutPosts)
}

func TestCheckoutController_PlaceOrder_Success(t *testing.T) {
	controller, router, backend, addressService := setupCheckoutControllerTest(t)
	backend.records = []model.CartRecord{{ProductID: "p1", Qty: 2}} // total 20
	backend.addresses = []model.Address{{ID: "addr-1", Text: "221B Baker Street"}}

	sess := &session.Session{Token: "token", Username: "crio-user", Balance: 500}
	router.POST("/checkout", func(c *gin.Context) {
		setSessionInContext(c, "sid", sess)
		controller.PlaceOrder(c)
	})

	// Selection is per session and validated against the cached book
	_, err := addressService.Book(context.Background(), "sid", sess.Token)
	require.NoError(t, err)
	_, err = addressService.Select("sid", "addr-1")
	require.NoError(t, err)

	w, response := placeOrder(t, router)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, float64(480), response["balance"])
	assert.Equal(t, 1, backend.checkoutPosts)
	assert.Equal(t, 480, sess.Balance)
}
