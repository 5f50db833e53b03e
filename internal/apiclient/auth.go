package apiclient

import (
	"context"
	"errors"

	users "github.com/AdamBeresnev/poule-board/internal/user"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out tokenResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("login response has no access token")
	}
	return out.AccessToken, nil
}

func (c *Client) Me(ctx context.Context) (*users.Organizer, error) {
	var out users.Organizer
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
