package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/paxify_bot/internal/controller/state"
	"github.com/Freeeeeet/paxify_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	session, err := h.authService.Session(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}

	text := "👋 Welcome to the Paxify bot!\n\n" +
		"Browse therapists, check their schedule and book an appointment right here.\n\n" +
		common.BuildMainMenu(session)

	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Help\n\n" +
		"/start - Main menu\n" +
		"/login - Log in with your Paxify account\n" +
		"/logout - Log out\n" +
		"/doctors - Find a therapist and book a session\n" +
		"/mybookings - My upcoming appointments\n" +
		"/cancel - Cancel the current input\n" +
		"/help - Show this help\n\n" +
		"To book: /doctors → choose a therapist → 📅 Schedule → pick a free 🟢 time."

	h.sendText(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleDoctors обрабатывает команду /doctors
func (h *Handlers) HandleDoctors(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	doctors, err := h.doctorService.Doctors(ctx)
	if err != nil {
		h.logger.Error("Failed to list doctors", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildDoctorsScreen(doctors, 0)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	appts, err := h.scheduleService.UpcomingAppointments(ctx, telegramID)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			h.sendError(ctx, b, update.Message.Chat.ID, "🔐 Log in to see your appointments: /login")
			return
		}
		h.logger.Error("Failed to load appointments", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, formatting.FormatAppointments(appts), nil)
}

// HandleLogin обрабатывает команду /login
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	session, err := h.authService.Session(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load session", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
	if session != nil {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"✅ You are already logged in as "+session.Email+".\n\nTo switch accounts use /logout first.")
		return
	}

	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendText(ctx, b, update.Message.Chat.ID,
		"🔐 Log in to Paxify\n\n"+
			"Step 1 of 2: Enter your email:\n\n"+
			"To cancel use /cancel")
}

// HandleLogout обрабатывает команду /logout
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if _, ok := h.requireSession(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	if err := h.authService.Logout(ctx, telegramID); err != nil {
		h.logger.Error("Failed to logout", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Failed to log out. Try again later.")
		return
	}

	h.bookingService.Forget(telegramID)
	h.stateManager.ClearState(telegramID)

	h.sendText(ctx, b, update.Message.Chat.ID, "👋 You have been logged out.")
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateNone:
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.")
		return
	case state.StateBookingName, state.StateBookingPhone, state.StateBookingEmail:
		// Форма записи остаётся открытой
		h.stateManager.SetState(telegramID, state.StateNone)
		h.sendText(ctx, b, update.Message.Chat.ID, "✅ Input cancelled.")
		h.sendBookingForm(ctx, b, telegramID, update.Message.Chat.ID)
		return
	}

	h.resetDialog(telegramID)

	h.sendText(ctx, b, update.Message.Chat.ID, "✅ Cancelled.\n\nUse /help to see available commands.")
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Текст не логируем: в нём может быть пароль
	h.logger.Debug("HandleTextMessage called",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		return
	}

	// Обрабатываем в зависимости от состояния
	switch currentState {
	case state.StateLoginEmail:
		h.handleLoginEmailStep(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPasswordStep(ctx, b, update)
	case state.StateBookingName:
		h.handleBookingNameStep(ctx, b, update)
	case state.StateBookingPhone:
		h.handleBookingPhoneStep(ctx, b, update)
	case state.StateBookingEmail:
		h.handleBookingEmailStep(ctx, b, update)
	case state.StateReviewComment:
		h.handleReviewCommentStep(ctx, b, update)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}

// resetDialog сбрасывает диалог входа или отзыва, не трогая снимок расписания
func (h *Handlers) resetDialog(telegramID int64) {
	h.stateManager.SetState(telegramID, state.StateNone)
	h.stateManager.DeleteData(telegramID, common.KeyLoginEmail)
	h.stateManager.DeleteData(telegramID, common.KeyReviewDoctor)
	h.stateManager.DeleteData(telegramID, common.KeyReviewRating)
}
