package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/qkart/storefront/internal/app/model"
)

// Products fetches the full product catalog.
// GET /products (unauthenticated)
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.getJSON(ctx, "/products", "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts fetches the catalog filtered by the given text. A 404
// means no products matched and yields an empty, non-nil list.
// GET /products/search?value=<text> (unauthenticated)
func (c *Client) SearchProducts(ctx context.Context, value string) ([]model.Product, error) {
	path := "/products/search?value=" + url.QueryEscape(value)

	var products []model.Product
	err := c.getJSON(ctx, path, "", &products)
	if err != nil {
		var backendErr *Error
		if errors.As(err, &backendErr) && backendErr.StatusCode == http.StatusNotFound {
			return []model.Product{}, nil
		}
		return nil, err
	}
	return products, nil
}
