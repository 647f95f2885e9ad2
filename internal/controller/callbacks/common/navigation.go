package common

import (
	"context"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Common Navigation Handlers
// ========================

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	WithContext(ctx, b, callback, h, func(hc *HandlerContext) {
		// Закрываем диалог и форму записи
		hc.ClearState()
		h.BookingService.Cancel(hc.TelegramID)

		session, err := h.AuthService.Session(ctx, hc.TelegramID)
		if err != nil {
			h.Logger.Error("Failed to load session for main menu",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.Error(err))
		}

		if err := hc.EditMessage(BuildMainMenu(session), nil); err != nil {
			h.Logger.Warn("Failed to edit main menu", zap.Error(err))
		}
		hc.Answer("")
	})
}

// HandleMyBookings показывает записи пациента новым сообщением
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, ErrorMessage(ErrNoMessage))
		return
	}

	update := &models.Update{
		Message: &models.Message{
			Chat: models.Chat{ID: msg.Chat.ID},
			From: &callback.From,
		},
	}

	h.HandleMyBookings(ctx, b, update)
	AnswerCallback(ctx, b, callback.ID, "")
}
