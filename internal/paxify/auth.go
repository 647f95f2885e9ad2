package paxify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrNoToken backend ответил без токена
var ErrNoToken = errors.New("login response has no token")

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login обменивает email и пароль на токен
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	body := loginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}
