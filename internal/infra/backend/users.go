package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	domainuser "compramex/internal/domain/user"
)

type wireIdentity struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// RegisterParams is the sign-up form payload forwarded to the users API.
type RegisterParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Colonia  string `json:"colonia"`
	City     string `json:"city"`
	State    string `json:"state"`
}

// Register creates an account and returns the identity to cache locally.
// Password handling is entirely the hosted API's concern.
func (c *Client) Register(ctx context.Context, params RegisterParams) (domainuser.Identity, error) {
	var wire wireIdentity
	if err := c.send(ctx, http.MethodPost, "/users", params, &wire); err != nil {
		return domainuser.Identity{}, err
	}
	return mapIdentity(wire), nil
}

// Login verifies credentials against the users API.
func (c *Client) Login(ctx context.Context, email, password string) (domainuser.Identity, error) {
	payload := map[string]string{"email": email, "password": password}
	var wire wireIdentity
	err := c.send(ctx, http.MethodPost, "/users/login", payload, &wire)
	if err != nil {
		if errors.Is(err, ErrNotFound) || strings.Contains(err.Error(), "status 401") {
			return domainuser.Identity{}, domainuser.ErrInvalidCredentials
		}
		return domainuser.Identity{}, err
	}
	return mapIdentity(wire), nil
}

func mapIdentity(w wireIdentity) domainuser.Identity {
	return domainuser.Identity{
		ID:       w.ID,
		Nickname: w.Nickname,
		Colonia:  w.Colonia,
		City:     w.City,
		State:    w.State,
	}
}
