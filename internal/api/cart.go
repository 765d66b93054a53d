package api

import (
	"context"

	"github.com/qkart/storefront/internal/app/model"
)

type upsertCartRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

type checkoutRequest struct {
	AddressID string `json:"addressId"`
}

// Cart fetches the authenticated user's sparse cart record list.
// GET /cart
func (c *Client) Cart(ctx context.Context, token string) ([]model.CartRecord, error) {
	var records []model.CartRecord
	if err := c.getJSON(ctx, "/cart", token, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpsertCart sets the quantity for one product and returns the complete,
// authoritative record list. Qty 0 asks the backend to remove the item.
// POST /cart {productId, qty}
func (c *Client) UpsertCart(ctx context.Context, token, productID string, qty int) ([]model.CartRecord, error) {
	req := upsertCartRequest{ProductID: productID, Qty: qty}

	var records []model.CartRecord
	if err := c.postJSON(ctx, "/cart", token, req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Checkout settles the cart against the selected shipping address.
// POST /cart/checkout {addressId}
func (c *Client) Checkout(ctx context.Context, token, addressID string) (*model.CheckoutResponse, error) {
	req := checkoutRequest{AddressID: addressID}

	var resp model.CheckoutResponse
	if err := c.postJSON(ctx, "/cart/checkout", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
