package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/paxify_bot/internal/controller/state"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,19}$`)
)

// ========================
// Login
// ========================

// handleLoginEmailStep обрабатывает ввод email
func (h *Handlers) handleLoginEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if !emailPattern.MatchString(email) {
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ This doesn't look like an email. Try again:")
		return
	}

	h.stateManager.SetData(telegramID, common.KeyLoginEmail, email)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)

	h.sendText(ctx, b, update.Message.Chat.ID,
		"Step 2 of 2: Enter your password:\n\n"+
			"The message with the password will be deleted.")
}

// handleLoginPasswordStep обрабатывает ввод пароля и входит в Paxify
func (h *Handlers) handleLoginPasswordStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	// Пароль не должен оставаться в истории чата
	if _, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: update.Message.ID}); err != nil {
		h.logger.Warn("Failed to delete password message",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	emailData, ok := h.stateManager.GetData(telegramID, common.KeyLoginEmail)
	email, _ := emailData.(string)
	if !ok || email == "" {
		h.resetDialog(telegramID)
		h.sendError(ctx, b, chatID, "❌ Login data was lost. Start again: /login")
		return
	}

	session, err := h.authService.Login(ctx, telegramID, email, password)
	h.resetDialog(telegramID)
	if err != nil {
		h.logger.Info("Login failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, loginErrorMessage(err))
		return
	}

	name := session.Name
	if name == "" {
		name = session.Email
	}

	text := fmt.Sprintf("✅ Welcome, %s!\n\n", name)
	if session.Role != "" && session.Role != model.RolePatient {
		text += "ℹ️ Your account is not a patient account, so booking is not available.\n\n"
	}
	text += "Find a therapist: /doctors\nYour appointments: /mybookings"

	h.sendText(ctx, b, chatID, text)
}

func loginErrorMessage(err error) string {
	var apiErr *paxify.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Unauthorized() {
			return "❌ Invalid email or password. Try again: /login"
		}
		if apiErr.RemoteMessage() != "" {
			return "❌ " + apiErr.RemoteMessage() + "\n\nTry again: /login"
		}
	}
	if errors.Is(err, paxify.ErrNoToken) {
		return "❌ Login failed: the server did not return a token."
	}
	return "❌ Login failed. Try again later."
}

// ========================
// Booking form
// ========================

// handleBookingNameStep обрабатывает ввод имени
func (h *Handlers) handleBookingNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if n := utf8.RuneCountInString(name); n < NameMinLength || n > NameMaxLength {
		h.sendText(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Name must be %d to %d characters. Try again:", NameMinLength, NameMaxLength))
		return
	}

	sess, ok := h.activeBooking(ctx, b, update)
	if !ok {
		return
	}
	sess.Form().SetName(name)
	h.stateManager.SetState(telegramID, state.StateBookingPhone)

	h.sendText(ctx, b, update.Message.Chat.ID, "📞 Enter your phone number:")
}

// handleBookingPhoneStep обрабатывает ввод телефона
func (h *Handlers) handleBookingPhoneStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	phone := strings.TrimSpace(update.Message.Text)

	if !phonePattern.MatchString(phone) {
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ Invalid phone number. Example: +20 100 123 4567\n\nTry again:")
		return
	}

	sess, ok := h.activeBooking(ctx, b, update)
	if !ok {
		return
	}
	sess.Form().SetPhone(phone)
	h.stateManager.SetState(telegramID, state.StateBookingEmail)

	current := sess.Form().Snapshot().Email
	prompt := "✉️ Enter your email, or send - to skip:"
	if current != "" {
		prompt = fmt.Sprintf("✉️ Enter your email, or send - to keep %s:", current)
	}
	h.sendText(ctx, b, update.Message.Chat.ID, prompt)
}

// handleBookingEmailStep обрабатывает ввод email и возвращает форму
func (h *Handlers) handleBookingEmailStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if email != SkipInput && !emailPattern.MatchString(email) {
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ This doesn't look like an email. Try again or send -:")
		return
	}

	sess, ok := h.activeBooking(ctx, b, update)
	if !ok {
		return
	}
	if email != SkipInput {
		sess.Form().SetEmail(email)
	}
	h.stateManager.SetState(telegramID, state.StateNone)

	h.sendBookingForm(ctx, b, telegramID, update.Message.Chat.ID)
}

// sendBookingForm заменяет старую форму записи новым сообщением внизу чата
func (h *Handlers) sendBookingForm(ctx context.Context, b *bot.Bot, telegramID, chatID int64) {
	sess := h.bookingService.Session(telegramID)
	slot, ok := sess.SelectedSlot()
	if !ok {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrNoActiveBooking))
		return
	}

	if old, ok := h.stateManager.GetData(telegramID, common.KeyBookingMessage); ok {
		if id, ok := old.(int); ok {
			b.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: id})
		}
	}

	text, kb := common.BuildBookingScreen(slot, sess.Form().Snapshot(), sess.Advisory())
	if msg := h.sendMessage(ctx, b, chatID, text, kb); msg != nil {
		h.stateManager.SetData(telegramID, common.KeyBookingMessage, msg.ID)
	}
}

// ========================
// Review
// ========================

// handleReviewCommentStep обрабатывает комментарий и отправляет отзыв
func (h *Handlers) handleReviewCommentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	comment := strings.TrimSpace(update.Message.Text)

	if comment == SkipInput {
		comment = ""
	}
	if utf8.RuneCountInString(comment) > ReviewCommentMaxLength {
		h.sendText(ctx, b, chatID, fmt.Sprintf("❌ Comment is too long. Maximum %d characters.\n\nTry again:", ReviewCommentMaxLength))
		return
	}

	doctorData, ok1 := h.stateManager.GetData(telegramID, common.KeyReviewDoctor)
	ratingData, ok2 := h.stateManager.GetData(telegramID, common.KeyReviewRating)
	doctorID, _ := doctorData.(string)
	rating, _ := ratingData.(int)
	h.resetDialog(telegramID)

	if !ok1 || !ok2 || doctorID == "" {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrReviewNotStarted))
		return
	}

	if err := h.doctorService.SubmitReview(ctx, telegramID, doctorID, rating, comment); err != nil {
		h.logger.Error("Failed to submit review",
			zap.Int64("telegram_id", telegramID),
			zap.String("doctor_id", doctorID),
			zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💬 Reviews", "reviews:"+doctorID)).
		AddBackButton("doctor:" + doctorID).
		Build()
	h.sendMessage(ctx, b, chatID, "✅ Thank you for your review!", kb)
}
