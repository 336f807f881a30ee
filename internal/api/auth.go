package api

import (
	"context"
	"net/http"
)

// loginRequest is the payload for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the payload for POST /auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and identity. Rejected
// credentials come back as an *Error with a 4xx status.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, wrapError(err, "Login")
	}
	return &resp, nil
}

// Register creates an account and returns a token and identity. A duplicate
// email comes back as an *Error with status 409.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, wrapError(err, "Register")
	}
	return &resp, nil
}

// ValidateToken asks the server whether the current token is still good.
// The route guard does not call this; admission stays a fast local check
// and the server re-rejects stale tokens on each API call.
func (c *Client) ValidateToken(ctx context.Context) (*ValidateResponse, error) {
	var resp ValidateResponse
	if err := c.do(ctx, http.MethodGet, "/auth/validate", nil, &resp); err != nil {
		return nil, wrapError(err, "ValidateToken")
	}
	return &resp, nil
}
