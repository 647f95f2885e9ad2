package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/model"
)

var (
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrNotPatient    = errors.New("only patients can book appointments")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	ErrEmptyDoctorID = errors.New("doctor id is empty")
)

// SessionStore хранилище токенов пользователей
type SessionStore interface {
	Save(ctx context.Context, s *model.PatientSession) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.PatientSession, error)
	Delete(ctx context.Context, telegramID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	CredentialFor(telegramID int64) booking.CredentialProvider
}

// PaxifyAPI внешний backend платформы
type PaxifyAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	FetchDoctorSlots(ctx context.Context, doctorID string) ([]model.RawSlot, error)
	SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error)
	PatientAppointments(ctx context.Context, patientID string) ([]model.RawSlot, error)
	PublicDoctors(ctx context.Context) ([]model.Doctor, error)
	DoctorProfile(ctx context.Context, doctorID string) (*model.DoctorProfile, error)
	DoctorReviews(ctx context.Context, doctorID string) ([]model.Review, error)
	SubmitReview(ctx context.Context, doctorID string, rating int, comment string) error
}
