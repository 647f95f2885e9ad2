package handlers

import (
	"context"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// activeBooking сессия записи с выбранным слотом.
// Если форма уже закрыта, диалог сбрасывается.
func (h *Handlers) activeBooking(ctx context.Context, b *bot.Bot, update *models.Update) (*booking.Session, bool) {
	telegramID := update.Message.From.ID

	sess := h.bookingService.Session(telegramID)
	if _, ok := sess.SelectedSlot(); !ok {
		h.logger.Info("Booking form closed during input", zap.Int64("telegram_id", telegramID))
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrNoActiveBooking)+"\n\nChoose a slot again: /doctors")
		return nil, false
	}
	return sess, true
}

// sendText отправляет обычное текстовое сообщение
func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
