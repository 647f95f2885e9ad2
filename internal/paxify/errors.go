package paxify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError ответ backend со статусом вне 2xx
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("paxify API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("paxify API returned %d: %s", e.StatusCode, e.Message)
}

// RemoteMessage сообщение из тела ответа, пригодное для показа пользователю
func (e *APIError) RemoteMessage() string {
	return e.Message
}

// Unauthorized токен отсутствует, истёк или не подходит по роли
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := strings.TrimSpace(payload.Message)
	if msg == "" {
		msg = strings.TrimSpace(payload.Error)
	}
	return &APIError{StatusCode: status, Message: msg}
}
