package handlers

import (
	"github.com/Freeeeeet/paxify_bot/internal/controller/state"
	"github.com/Freeeeeet/paxify_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	authService     *service.AuthService
	scheduleService *service.ScheduleService
	doctorService   *service.DoctorService
	bookingService  *service.BookingService
	stateManager    *state.Manager
	logger          *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	authService *service.AuthService,
	scheduleService *service.ScheduleService,
	doctorService *service.DoctorService,
	bookingService *service.BookingService,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		authService:     authService,
		scheduleService: scheduleService,
		doctorService:   doctorService,
		bookingService:  bookingService,
		stateManager:    stateManager,
		logger:          logger,
	}
}
