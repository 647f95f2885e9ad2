package callbacktypes

import (
	"context"

	"github.com/Freeeeeet/paxify_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) UserState
	SetState(telegramID int64, state UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	DeleteData(telegramID int64, key string)
	GetAllData(telegramID int64) map[string]interface{}
	Bump(telegramID int64, key string) int64
	Counter(telegramID int64, key string) int64
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	AuthService     *service.AuthService
	ScheduleService *service.ScheduleService
	DoctorService   *service.DoctorService
	BookingService  *service.BookingService
	StateManager    StateManager
	Logger          *zap.Logger

	// Функции-хэндлеры из основного контроллера
	HandleDoctors    func(ctx context.Context, b *bot.Bot, update *models.Update)
	HandleMyBookings func(ctx context.Context, b *bot.Bot, update *models.Update)
	HandleLogin      func(ctx context.Context, b *bot.Bot, update *models.Update)
}
