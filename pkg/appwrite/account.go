package appwrite

import (
	"context"
	"net/http"

	"github.com/EshanAk-dev/Filmex/internal/model"
)

// Account exposes the identity service operations.
type Account struct {
	c *Client
}

func NewAccount(c *Client) *Account { return &Account{c: c} }

// Create registers a new account. It does not sign the account in.
func (a *Account) Create(ctx context.Context, userID, email, password, name string) (model.User, error) {
	body := map[string]string{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}
	var u model.User
	if err := a.c.call(ctx, http.MethodPost, "/account", nil, body, &u, "Failed to create account"); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// CreateEmailPasswordSession signs in with email and password. The session
// cookie is retained by the underlying HTTP client.
func (a *Account) CreateEmailPasswordSession(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return a.c.call(ctx, http.MethodPost, "/account/sessions/email", nil, body, nil, "Failed to sign in")
}

// Get returns the currently authenticated account.
func (a *Account) Get(ctx context.Context) (model.User, error) {
	var u model.User
	if err := a.c.call(ctx, http.MethodGet, "/account", nil, nil, &u, "Failed to fetch account"); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// DeleteSession ends a session; pass "current" for the active one.
func (a *Account) DeleteSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		sessionID = "current"
	}
	return a.c.call(ctx, http.MethodDelete, "/account/sessions/"+sessionID, nil, nil, nil, "Failed to sign out")
}

// UpdateName changes the display name of the authenticated account.
func (a *Account) UpdateName(ctx context.Context, name string) (model.User, error) {
	var u model.User
	body := map[string]string{"name": name}
	if err := a.c.call(ctx, http.MethodPatch, "/account/name", nil, body, &u, "Failed to update profile"); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// UpdatePassword changes the password, verifying the old one.
func (a *Account) UpdatePassword(ctx context.Context, newPassword, oldPassword string) (model.User, error) {
	var u model.User
	body := map[string]string{"password": newPassword, "oldPassword": oldPassword}
	if err := a.c.call(ctx, http.MethodPatch, "/account/password", nil, body, &u, "Failed to update password"); err != nil {
		return model.User{}, err
	}
	return u, nil
}
