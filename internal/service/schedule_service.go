package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"github.com/Freeeeeet/paxify_bot/internal/schedule"
	"go.uber.org/zap"
)

// ScheduleService расписание врача и записи пациента
type ScheduleService struct {
	api      PaxifyAPI
	sessions SessionStore
	builder  *schedule.Builder
	logger   *zap.Logger
	now      func() time.Time
}

func NewScheduleService(api PaxifyAPI, sessions SessionStore, builder *schedule.Builder, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		api:      api,
		sessions: sessions,
		builder:  builder,
		logger:   logger,
		now:      time.Now,
	}
}

// DoctorSchedule ближайшие дни со слотами врача
func (s *ScheduleService) DoctorSchedule(ctx context.Context, telegramID int64, doctorID string) (*model.DoctorSchedule, error) {
	doctorID = strings.TrimSpace(doctorID)
	if doctorID == "" {
		return nil, ErrEmptyDoctorID
	}

	ctx, err := s.withToken(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	raws, err := s.api.FetchDoctorSlots(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("fetch slots: %w", err)
	}

	now := s.now()
	days := s.builder.Build(raws, now)

	s.logger.Debug("Doctor schedule built",
		zap.String("doctor_id", doctorID),
		zap.Int("raw_slots", len(raws)),
		zap.Int("days", len(days)),
	)

	return &model.DoctorSchedule{
		DoctorID:  doctorID,
		Days:      days,
		FetchedAt: now,
	}, nil
}

// UpcomingAppointments будущие записи пациента по возрастанию времени
func (s *ScheduleService) UpcomingAppointments(ctx context.Context, telegramID int64) ([]model.Appointment, error) {
	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	now := s.now()
	if session == nil || session.Expired(now) || session.PatientID == "" {
		return nil, ErrNotLoggedIn
	}

	raws, err := s.api.PatientAppointments(paxify.WithToken(ctx, session.Token), session.PatientID)
	if err != nil {
		return nil, fmt.Errorf("fetch appointments: %w", err)
	}

	return s.builder.Appointments(raws, now), nil
}

// withToken добавляет токен пользователя, если он вошёл
func (s *ScheduleService) withToken(ctx context.Context, telegramID int64) (context.Context, error) {
	session, err := s.sessions.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return ctx, fmt.Errorf("get session: %w", err)
	}
	if session == nil || session.Expired(s.now()) {
		return ctx, nil
	}
	return paxify.WithToken(ctx, session.Token), nil
}
