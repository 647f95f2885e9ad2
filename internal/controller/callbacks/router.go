package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/patient"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Callback Data Patterns
// ========================
// These constants define the callback data formats used throughout the bot

// Common callbacks
const (
	BackToMain = "back_to_main"
	Noop       = "noop"
	MyBookings = "my_bookings"
)

// Therapist callbacks
const (
	DoctorsPage   = "doctors_page:" // doctors_page:0
	DoctorProfile = "doctor:"       // doctor:17
	Schedule      = "schedule:"     // schedule:17
	DayMore       = "day_more:"     // day_more:version:day
)

// Booking callbacks
const (
	SelectSlot    = "slot:" // slot:version:day:slot
	BookingForm   = "book_form"
	PaymentMethod = "pay:" // pay:CASH
	ConfirmBook   = "book_confirm"
	CancelBook    = "book_cancel"
)

// Review callbacks
const (
	Reviews      = "reviews:"     // reviews:17
	NewReview    = "review_new:"  // review_new:17
	ReviewRating = "review_rate:" // review_rate:17:5
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Common Navigation =====
	case data == BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == Noop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")
	case data == MyBookings:
		common.HandleMyBookings(ctx, b, callback, h)

	// ===== Therapists =====
	case strings.HasPrefix(data, DoctorsPage):
		patient.HandleDoctorsPage(ctx, b, callback, h)
	case strings.HasPrefix(data, DoctorProfile):
		patient.HandleDoctorProfile(ctx, b, callback, h)
	case strings.HasPrefix(data, Schedule):
		patient.HandleSchedule(ctx, b, callback, h)
	case strings.HasPrefix(data, DayMore):
		patient.HandleDayMore(ctx, b, callback, h)

	// ===== Booking =====
	case strings.HasPrefix(data, SelectSlot):
		patient.HandleSelectSlot(ctx, b, callback, h)
	case data == BookingForm:
		patient.HandleBookingForm(ctx, b, callback, h)
	case strings.HasPrefix(data, PaymentMethod):
		patient.HandlePaymentMethod(ctx, b, callback, h)
	case data == ConfirmBook:
		patient.HandleConfirmBooking(ctx, b, callback, h)
	case data == CancelBook:
		patient.HandleCancelBooking(ctx, b, callback, h)

	// ===== Reviews =====
	case strings.HasPrefix(data, Reviews):
		patient.HandleReviews(ctx, b, callback, h)
	case strings.HasPrefix(data, NewReview):
		patient.HandleNewReview(ctx, b, callback, h)
	case strings.HasPrefix(data, ReviewRating):
		patient.HandleReviewRating(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown command")
	}
}
