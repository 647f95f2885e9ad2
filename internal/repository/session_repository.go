package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/Freeeeeet/paxify_bot/internal/repository/base"
)

// SessionRepository токены пользователей Telegram
type SessionRepository struct {
	*base.Repository
	now func() time.Time
}

func NewSessionRepository(db base.DB) *SessionRepository {
	return &SessionRepository{
		Repository: base.NewRepository(db),
		now:        time.Now,
	}
}

// Save создаёт или обновляет сессию пользователя
func (r *SessionRepository) Save(ctx context.Context, s *model.PatientSession) error {
	query := `
		INSERT INTO patient_sessions (telegram_id, token, patient_id, role, email, name, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (telegram_id) DO UPDATE
		SET token = EXCLUDED.token,
		    patient_id = EXCLUDED.patient_id,
		    role = EXCLUDED.role,
		    email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		s.TelegramID,
		s.Token,
		s.PatientID,
		s.Role,
		s.Email,
		s.Name,
		s.ExpiresAt,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return fmt.Errorf("save patient session: %w", err)
	}

	return nil
}

// GetByTelegramID сессия пользователя; nil, nil если её нет
func (r *SessionRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.PatientSession, error) {
	query := `
		SELECT telegram_id, token, patient_id, role, email, name, expires_at, created_at, updated_at
		FROM patient_sessions
		WHERE telegram_id = $1
	`

	var s model.PatientSession
	err := r.QueryRow(ctx, query, telegramID).Scan(
		&s.TelegramID,
		&s.Token,
		&s.PatientID,
		&s.Role,
		&s.Email,
		&s.Name,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient session: %w", err)
	}

	return &s, nil
}

// Delete удаляет сессию (выход)
func (r *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	query := `DELETE FROM patient_sessions WHERE telegram_id = $1`

	if _, err := r.ExecAffected(ctx, query, telegramID); err != nil {
		return fmt.Errorf("delete patient session: %w", err)
	}
	return nil
}

// DeleteExpired удаляет сессии с истёкшим токеном
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM patient_sessions WHERE expires_at IS NOT NULL AND expires_at <= $1`

	affected, err := r.ExecAffected(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return affected, nil
}

// CredentialFor источник токена для записи от имени пользователя.
// Истёкший токен считается отсутствующим.
func (r *SessionRepository) CredentialFor(telegramID int64) booking.CredentialProvider {
	return booking.CredentialFunc(func(ctx context.Context) (string, error) {
		s, err := r.GetByTelegramID(ctx, telegramID)
		if err != nil {
			return "", err
		}
		if s == nil || s.Expired(r.now()) {
			return "", nil
		}
		return s.Token, nil
	})
}
