package callbacks

import (
	"context"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/paxify_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Handler with Dependencies
// ========================

// Handler обертка для callbacktypes.Handler с методами
type Handler struct {
	*callbacktypes.Handler
}

// StateManager интерфейс для управления состоянием пользователей
type StateManager = callbacktypes.StateManager

// UserState представляет текущее состояние пользователя в диалоге
type UserState = callbacktypes.UserState

// NewHandler создаёт новый обработчик callbacks с зависимостями
func NewHandler(
	authService *service.AuthService,
	scheduleService *service.ScheduleService,
	doctorService *service.DoctorService,
	bookingService *service.BookingService,
	stateManager callbacktypes.StateManager,
	logger *zap.Logger,
	handleDoctors func(ctx context.Context, b *bot.Bot, update *models.Update),
	handleMyBookings func(ctx context.Context, b *bot.Bot, update *models.Update),
	handleLogin func(ctx context.Context, b *bot.Bot, update *models.Update),
) *Handler {
	inner := &callbacktypes.Handler{
		AuthService:      authService,
		ScheduleService:  scheduleService,
		DoctorService:    doctorService,
		BookingService:   bookingService,
		StateManager:     stateManager,
		Logger:           logger,
		HandleDoctors:    handleDoctors,
		HandleMyBookings: handleMyBookings,
		HandleLogin:      handleLogin,
	}
	return &Handler{Handler: inner}
}

// HandleCallbackQuery - главный обработчик callback queries
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	h.Logger.Info("Callback received",
		zap.String("data", callback.Data),
		zap.Int64("user_id", callback.From.ID),
	)

	Route(ctx, b, callback, h.Handler)
}
