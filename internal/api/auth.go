package api

import (
	"context"

	"github.com/qkart/storefront/internal/app/model"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session token plus the user's wallet
// balance.
// POST /auth/login {username, password}
func (c *Client) Login(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	req := credentialsRequest{Username: username, Password: password}

	var resp model.AuthResponse
	if err := c.postJSON(ctx, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new user account. The user logs in separately
// afterwards.
// POST /auth/register {username, password}
func (c *Client) Register(ctx context.Context, username, password string) error {
	req := credentialsRequest{Username: username, Password: password}
	return c.postJSON(ctx, "/auth/register", "", req, nil)
}
