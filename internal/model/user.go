package model

import "time"

const RolePatient = "PATIENT"

// Identity пользователь, восстановленный из claims токена
type Identity struct {
	PatientID string `json:"id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// IsPatient может ли пользователь записываться на приём
func (i *Identity) IsPatient() bool {
	return i != nil && i.Role == RolePatient
}

// PatientSession сохранённый токен пользователя Telegram
type PatientSession struct {
	TelegramID int64      `json:"telegram_id"`
	Token      string     `json:"-"`
	PatientID  string     `json:"patient_id"`
	Role       string     `json:"role"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	ExpiresAt  *time.Time `json:"expires_at"` // nil - токен без exp
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Expired истёк ли токен сессии
func (s *PatientSession) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}
