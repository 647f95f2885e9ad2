package paxify

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// Эндпоинты, на которые токен не отправляется
var publicAuthPaths = map[string]struct{}{
	"/api/auth/login":    {},
	"/api/auth/register": {},
}

type tokenKey struct{}

// WithToken кладёт токен пользователя в контекст исходящих запросов
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom токен из контекста
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// transport добавляет Authorization и X-Request-ID
type transport struct {
	base http.RoundTripper
}

func newTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if t, ok := base.(*transport); ok {
		return t
	}
	return &transport{base: base}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTripper не должен менять исходный запрос
	req = req.Clone(req.Context())

	if req.Header.Get(requestIDHeader) == "" {
		req.Header.Set(requestIDHeader, uuid.NewString())
	}

	if _, public := publicAuthPaths[req.URL.Path]; !public && req.Header.Get("Authorization") == "" {
		if token := TokenFrom(req.Context()); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return t.base.RoundTrip(req)
}
