package model

// AuthResponse is the backend payload for a successful login.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Balance  int    `json:"balance"`
}

// CheckoutResponse is the backend payload for a settled order. Balance
// is the authoritative post-checkout wallet balance when the backend
// reports one; older backend versions omit it.
type CheckoutResponse struct {
	Success bool `json:"success"`
	Balance *int `json:"balance,omitempty"`
}
