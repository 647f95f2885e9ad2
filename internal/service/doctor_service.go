package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"go.uber.org/zap"
)

// DoctorService каталог врачей и отзывы
type DoctorService struct {
	api      PaxifyAPI
	sessions SessionStore
	logger   *zap.Logger
	now      func() time.Time
}

func NewDoctorService(api PaxifyAPI, sessions SessionStore, logger *zap.Logger) *DoctorService {
	return &DoctorService{
		api:      api,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// Doctors публичный список врачей
func (s *DoctorService) Doctors(ctx context.Context) ([]model.Doctor, error) {
	doctors, err := s.api.PublicDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

// Profile профиль врача с рейтингом
func (s *DoctorService) Profile(ctx context.Context, doctorID string) (*model.DoctorProfile, error) {
	if strings.TrimSpace(doctorID) == "" {
		return nil, ErrEmptyDoctorID
	}

	profile, err := s.api.DoctorProfile(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor profile: %w", err)
	}
	if profile.Doctor.ID == "" {
		profile.Doctor.ID = model.ExternalID(doctorID)
	}
	return profile, nil
}

// Reviews отзывы о враче
func (s *DoctorService) Reviews(ctx context.Context, doctorID string) ([]model.Review, error) {
	if strings.TrimSpace(doctorID) == "" {
		return nil, ErrEmptyDoctorID
	}

	reviews, err := s.api.DoctorReviews(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("doctor reviews: %w", err)
	}
	return reviews, nil
}

// SubmitReview отзыв от имени вошедшего пациента
func (s *DoctorService) SubmitReview(ctx context.Context, telegramID int64, doctorID string, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(doctorID) == "" {
		return ErrEmptyDoctorID
	}

	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.Expired(s.now()) {
		return ErrNotLoggedIn
	}

	err = s.api.SubmitReview(paxify.WithToken(ctx, session.Token), doctorID, rating, strings.TrimSpace(comment))
	if err != nil {
		return fmt.Errorf("submit review: %w", err)
	}

	s.logger.Info("Review submitted",
		zap.Int64("telegram_id", telegramID),
		zap.String("doctor_id", doctorID),
		zap.Int("rating", rating),
	)
	return nil
}
