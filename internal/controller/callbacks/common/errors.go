package common

import (
	"errors"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"github.com/Freeeeeet/paxify_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage        = errors.New("no message in callback")
	ErrInvalidFormat    = errors.New("invalid callback format")
	ErrScheduleExpired  = errors.New("schedule is no longer on screen")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrNoActiveBooking  = errors.New("no booking form is open")
	ErrReviewNotStarted = errors.New("review is not started")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	var remote *booking.RemoteError
	var apiErr *paxify.APIError

	switch {
	case errors.Is(err, booking.ErrNoSlotSelected):
		return "❌ No appointment slot selected"
	case errors.Is(err, booking.ErrNotAuthenticated), errors.Is(err, service.ErrNotLoggedIn):
		return "🔐 You must be logged in to book an appointment. Use /login"
	case errors.Is(err, booking.ErrIdentityUnresolvable):
		return "❌ Cannot determine patient ID from token. Please /login again"
	case errors.Is(err, booking.ErrFormIncomplete):
		return "✏️ Please enter your name and phone first"
	case errors.Is(err, booking.ErrSlotUnavailable):
		return "❌ This slot is booked or already in the past"
	case errors.Is(err, booking.ErrBookingInProgress):
		return "⏳ Your booking is already being processed"
	case errors.Is(err, booking.ErrSlotBusy):
		return "⏳ Someone is booking this slot right now. Try again in a moment"
	case errors.As(err, &remote):
		return "❌ " + remote.Message
	case errors.Is(err, service.ErrNotPatient):
		return "❌ Only patients can book appointments"
	case errors.Is(err, service.ErrInvalidRating):
		return "❌ Rating must be between 1 and 5"
	case errors.Is(err, service.ErrEmptyDoctorID), errors.Is(err, ErrDoctorNotFound):
		return "❌ Therapist not found"
	case errors.Is(err, ErrScheduleExpired):
		return "⌛ This schedule is outdated. Open it again"
	case errors.Is(err, ErrSlotNotFound):
		return "❌ Slot not found. Refresh the schedule"
	case errors.Is(err, ErrNoActiveBooking):
		return "❌ The booking form is closed"
	case errors.Is(err, ErrReviewNotStarted):
		return "❌ Start the review again"
	case errors.Is(err, ErrNoMessage):
		return "❌ Failed to process the message"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	case errors.As(err, &apiErr) && apiErr.Unauthorized():
		return "🔐 Your session has expired. Use /login"
	case errors.As(err, &apiErr) && apiErr.RemoteMessage() != "":
		return "❌ " + apiErr.RemoteMessage()
	default:
		return "❌ Something went wrong. Try again later"
	}
}
