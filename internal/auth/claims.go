package auth

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// MapClaims приводит разные формы claims к модели пользователя
func MapClaims(claims map[string]any) model.Identity {
	id := firstString(claims, "userId", "id", "sub")

	email := firstString(claims, "email", "userEmail")
	if email == "" {
		if sub := claimString(claims["sub"]); strings.Contains(sub, "@") {
			email = sub
		}
	}
	if email == "" {
		email = claimString(claims["username"])
	}

	return model.Identity{
		PatientID: id,
		Role:      roleOf(claims),
		Email:     email,
		Name:      nameOf(claims, email),
	}
}

// roleOf: role, roles[0], authorities[0], scope; строка или объект с name
func roleOf(claims map[string]any) string {
	candidates := []any{
		claims["role"],
		firstOf(claims["roles"]),
		firstOf(claims["authorities"]),
		claims["scope"],
	}

	for _, c := range candidates {
		switch v := c.(type) {
		case string:
			if v != "" {
				return strings.ToUpper(v)
			}
		case map[string]any:
			if name := firstString(v, "name", "authority"); name != "" {
				return strings.ToUpper(name)
			}
		}
	}
	return ""
}

func nameOf(claims map[string]any, email string) string {
	if name := firstString(claims, "name", "fullName"); name != "" {
		return name
	}

	full := strings.TrimSpace(strings.Join(nonEmpty(
		claimString(claims["firstName"]),
		claimString(claims["lastName"]),
	), " "))
	if full != "" {
		return full
	}

	if name := firstString(claims, "given_name", "preferred_username"); name != "" {
		return name
	}

	if email != "" {
		local, _, _ := strings.Cut(email, "@")
		return local
	}
	return ""
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := claimString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

func firstOf(v any) any {
	if list, ok := v.([]any); ok && len(list) > 0 {
		return list[0]
	}
	return nil
}

// claimString строковое представление claim; числовые id тоже допустимы
func claimString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return fmt.Sprintf("%.0f", val)
	default:
		return ""
	}
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
