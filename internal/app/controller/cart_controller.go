package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/app/model"
	"github.com/qkart/storefront/internal/app/service"
	apperrors "github.com/qkart/storefront/internal/errors"
	"github.com/qkart/storefront/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type UpdateCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       *int   `json:"qty" binding:"required"`
}

// cartPayload renders the reconciled cart: zero-quantity lines are
// hidden from the item list but still counted into the total.
func cartPayload(items []model.CartItem) gin.H {
	visible := make([]model.CartItem, 0, len(items))
	for _, item := range items {
		if item.Displayable() {
			visible = append(visible, item)
		}
	}
	return gin.H{
		"success": true,
		"items":   visible,
		"total":   service.ComputeTotal(items),
	}
}

// GetCart fetches and reconciles the session's cart.
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

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

	log.Debug("Cart served", map[string]interface{}{
		"items": len(items),
	})
	c.JSON(http.StatusOK, cartPayload(items))
}

// AddItem puts a new product into the cart with quantity 1. Adding a
// product that already has a live cart line is rejected without a
// backend round trip.
// POST /api/v1/cart/items
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-to-cart payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sess, _ := middleware.GetSession(c)

	current, err := ctrl.cartService.Records(c.Request.Context(), sess.Token)
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	items, err := ctrl.cartService.Mutate(c.Request.Context(), sess.Token, current, req.ProductID, 1, service.MutateOptions{PreventDuplicate: true})
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, cartPayload(items))
}

// UpdateItem sets the quantity for one cart line. Qty 0 removes it.
// PUT /api/v1/cart/items
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart update payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}
	if *req.Qty < 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Quantity cannot be negative")
		return
	}

	sess, _ := middleware.GetSession(c)

	items, err := ctrl.cartService.Mutate(c.Request.Context(), sess.Token, nil, req.ProductID, *req.Qty, service.MutateOptions{})
	if err != nil {
		ctrl.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, cartPayload(items))
}

func (ctrl *CartController) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthRequired):
		apperrors.Unauthorized(c, "")
	case errors.Is(err, service.ErrDuplicateItem):
		apperrors.Conflict(c, apperrors.CartDuplicateItem, "Item already in cart. Use the cart sidebar to update quantity or remove item.")
	default:
		respondBackendError(c, err)
	}
}
