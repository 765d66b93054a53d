package api

import (
	"context"
	"net/http"

	"github.com/qkart/storefront/internal/app/model"
)

type addAddressRequest struct {
	Address string `json:"address"`
}

// Addresses fetches the user's address list.
// GET /user/addresses
func (c *Client) Addresses(ctx context.Context, token string) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.getJSON(ctx, "/user/addresses", token, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// AddAddress creates a new address and returns the updated list.
// POST /user/addresses {address}
func (c *Client) AddAddress(ctx context.Context, token, text string) ([]model.Address, error) {
	req := addAddressRequest{Address: text}

	var addresses []model.Address
	if err := c.postJSON(ctx, "/user/addresses", token, req, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// DeleteAddress removes an address and returns the updated list.
// DELETE /user/addresses/:id
func (c *Client) DeleteAddress(ctx context.Context, token, addressID string) ([]model.Address, error) {
	body, err := c.doRequest(ctx, http.MethodDelete, "/user/addresses/"+addressID, token, nil)
	if err != nil {
		return nil, err
	}

	var addresses []model.Address
	if err := decodeList(body, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}
