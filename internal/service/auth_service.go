package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/auth"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"go.uber.org/zap"
)

// AuthService вход и выход пациентов
type AuthService struct {
	api      PaxifyAPI
	sessions SessionStore
	decoder  *auth.Decoder
	logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(api PaxifyAPI, sessions SessionStore, decoder *auth.Decoder, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		decoder:  decoder,
		logger:   logger,
		now:      time.Now,
	}
}

// Login получает токен и сохраняет сессию пользователя Telegram.
// Если токен не удалось разобрать, сессия сохраняется с именем из email.
func (s *AuthService) Login(ctx context.Context, telegramID int64, email, password string) (*model.PatientSession, error) {
	email = strings.TrimSpace(email)

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	session := &model.PatientSession{
		TelegramID: telegramID,
		Token:      token,
	}

	cred, err := s.decoder.Decode(token)
	if err != nil {
		s.logger.Warn("Failed to decode login token",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		session.Email = email
		session.Name = localPart(email)
	} else {
		session.PatientID = cred.Identity.PatientID
		session.Role = cred.Identity.Role
		session.Email = cred.Identity.Email
		session.Name = cred.Identity.Name
		session.ExpiresAt = cred.ExpiresAt
		if session.Email == "" {
			session.Email = email
		}
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.logger.Info("Patient logged in",
		zap.Int64("telegram_id", telegramID),
		zap.String("patient_id", session.PatientID),
		zap.String("role", session.Role),
	)

	return session, nil
}

// Logout удаляет сохранённый токен
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.sessions.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info("Patient logged out", zap.Int64("telegram_id", telegramID))
	return nil
}

// Session действующая сессия пользователя; nil если не вошёл или токен истёк
func (s *AuthService) Session(ctx context.Context, telegramID int64) (*model.PatientSession, error) {
	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.Expired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// CleanupExpiredSessions удаляет сессии с истёкшими токенами
func (s *AuthService) CleanupExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.sessions.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	return n, nil
}

func localPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	if email == "" {
		return "User"
	}
	return email
}
