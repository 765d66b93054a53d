package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/app/service"
	apperrors "github.com/qkart/storefront/internal/errors"
	"github.com/qkart/storefront/internal/middleware"
)

type CheckoutController struct {
	cartService     service.CartService
	addressService  service.AddressService
	checkoutService service.CheckoutService
}

func NewCheckoutController(cartService service.CartService, addressService service.AddressService, checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		cartService:     cartService,
		addressService:  addressService,
		checkoutService: checkoutService,
	}
}

// PlaceOrder settles the cart against the wallet using the selected
// shipping address. Precondition failures come back as 400s with the
// message the storefront shows verbatim.
// POST /api/v1/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	sid := middleware.GetSessionID(c)
	sess, _ := middleware.GetSession(c)

	items, err := ctrl.cartService.Fetch(c.Request.Context(), sess.Token)
	if err != nil {
		if errors.Is(err, service.ErrAuthRequired) {
			apperrors.Unauthorized(c, "")
			return
		}
		respondBackendError(c, err)
		return
	}

	book, err := ctrl.addressService.Book(c.Request.Context(), sid, sess.Token)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	balance, err := ctrl.checkoutService.PlaceOrder(c.Request.Context(), sid, sess, items, *book)
	if err != nil {
		ctrl.respondCheckoutError(c, err)
		return
	}

	log.Info("Checkout completed", map[string]interface{}{
		"balance": balance,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
	})
}

func (ctrl *CheckoutController) respondCheckoutError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		apperrors.Unauthorized(c, "")
	case errors.Is(err, service.ErrInsufficientBalance):
		apperrors.BadRequest(c, apperrors.CheckoutInsufficientBalance, "You do not have enough balance in your wallet for this purchase")
	case errors.Is(err, service.ErrNoAddress):
		apperrors.BadRequest(c, apperrors.CheckoutNoAddress, "Please add a new address before proceeding.")
	case errors.Is(err, service.ErrNoAddressSelected):
		apperrors.BadRequest(c, apperrors.CheckoutNoAddressSelected, "Please select one shipping address to proceed.")
	default:
		respondBackendError(c, err)
	}
}
