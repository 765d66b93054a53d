package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qkart/storefront/internal/app/service"
	apperrors "github.com/qkart/storefront/internal/errors"
	"github.com/qkart/storefront/internal/middleware"
)

type AddressController struct {
	addressService service.AddressService
}

func NewAddressController(addressService service.AddressService) *AddressController {
	return &AddressController{addressService: addressService}
}

type AddAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

type SelectAddressRequest struct {
	AddressID string `json:"addressId" binding:"required"`
}

// ListAddresses returns the session's address book, including the
// current selection.
// GET /api/v1/addresses
func (ctrl *AddressController) ListAddresses(c *gin.Context) {
	sid := middleware.GetSessionID(c)
	sess, _ := middleware.GetSession(c)

	book, err := ctrl.addressService.Book(c.Request.Context(), sid, sess.Token)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"addresses": book.Entries,
		"selected":  book.SelectedID,
	})
}

// AddAddress creates a new shipping address.
// POST /api/v1/addresses
func (ctrl *AddressController) AddAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add-address payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sid := middleware.GetSessionID(c)
	sess, _ := middleware.GetSession(c)

	book, err := ctrl.addressService.Add(c.Request.Context(), sid, sess.Token, req.Address)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	log.Info("Address added", map[string]interface{}{
		"count": len(book.Entries),
	})

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"addresses": book.Entries,
		"selected":  book.SelectedID,
	})
}

// DeleteAddress removes a shipping address. Deleting the currently
// selected address clears the selection.
// DELETE /api/v1/addresses/:id
func (ctrl *AddressController) DeleteAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	addressID := c.Param("id")
	sid := middleware.GetSessionID(c)
	sess, _ := middleware.GetSession(c)

	book, err := ctrl.addressService.Delete(c.Request.Context(), sid, sess.Token, addressID)
	if err != nil {
		respondBackendError(c, err)
		return
	}

	log.Info("Address deleted", map[string]interface{}{
		"address_id": addressID,
		"count":      len(book.Entries),
	})

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"addresses": book.Entries,
		"selected":  book.SelectedID,
	})
}

// SelectAddress picks the shipping address for checkout. The ID must be
// in the current address book.
// PUT /api/v1/addresses/selected
func (ctrl *AddressController) SelectAddress(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid select-address payload", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sid := middleware.GetSessionID(c)

	book, err := ctrl.addressService.Select(sid, req.AddressID)
	if err != nil {
		if errors.Is(err, service.ErrAddressNotFound) {
			apperrors.NotFound(c, apperrors.AddressNotFound, "Address not found")
			return
		}
		respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"selected": book.SelectedID,
	})
}
