package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"go.uber.org/zap"
)

// BookingService сессии записи пользователей Telegram
type BookingService struct {
	orchestrator *booking.Orchestrator
	sessions     SessionStore
	logger       *zap.Logger
	now          func() time.Time

	mu     sync.Mutex
	byUser map[int64]*booking.Session
}

func NewBookingService(api PaxifyAPI, decoder booking.IdentityDecoder, guard booking.SlotGuard, sessions SessionStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		orchestrator: booking.NewOrchestrator(api, decoder, guard, logger),
		sessions:     sessions,
		logger:       logger,
		now:          time.Now,
		byUser:       make(map[int64]*booking.Session),
	}
}

// Session сессия записи пользователя, создаётся при первом обращении
func (s *BookingService) Session(telegramID int64) *booking.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byUser[telegramID]
	if !ok {
		sess = booking.NewSession(s.sessions.CredentialFor(telegramID))
		s.byUser[telegramID] = sess
	}
	return sess
}

// SelectSlot выбирает слот для записи.
// Пользователь, вошедший не как пациент, записаться не может.
func (s *BookingService) SelectSlot(ctx context.Context, telegramID int64, slot model.Slot) error {
	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session != nil && !session.Expired(s.now()) && session.Role != "" && session.Role != model.RolePatient {
		return ErrNotPatient
	}

	return s.Session(telegramID).SelectSlot(slot)
}

// Confirm отправляет запись выбранного слота
func (s *BookingService) Confirm(ctx context.Context, telegramID int64) (*booking.Outcome, error) {
	sess := s.Session(telegramID)
	if _, ok := sess.SelectedSlot(); !ok {
		return nil, booking.ErrNoSlotSelected
	}

	token, err := s.sessions.CredentialFor(telegramID).StoredCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if token != "" {
		ctx = paxify.WithToken(ctx, token)
	}

	return s.orchestrator.ConfirmBooking(ctx, sess)
}

// Cancel закрывает форму записи
func (s *BookingService) Cancel(telegramID int64) {
	s.mu.Lock()
	sess, ok := s.byUser[telegramID]
	s.mu.Unlock()

	if ok {
		sess.Cancel()
	}
}

// Forget удаляет сессию записи (после выхода)
func (s *BookingService) Forget(telegramID int64) {
	s.mu.Lock()
	sess, ok := s.byUser[telegramID]
	delete(s.byUser, telegramID)
	s.mu.Unlock()

	if ok {
		sess.Cancel()
	}
}
