package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/paxify_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/go-telegram/bot/models"
)

const (
	DoctorsPerPage = 5
	// SlotsPerDay сколько слотов дня видно до нажатия "More"
	SlotsPerDay  = 6
	SlotsPerRow  = 3
	ReviewsShown = 10
)

// NoExpandedDay ни один день расписания не раскрыт
const NoExpandedDay = -1

// BuildMainMenu текст главного меню
func BuildMainMenu(session *model.PatientSession) string {
	var sb strings.Builder

	sb.WriteString("🏥 <b>Paxify</b>\n\n")
	if session != nil {
		name := session.Name
		if name == "" {
			name = session.Email
		}
		sb.WriteString(fmt.Sprintf("👤 Logged in as <b>%s</b>\n\n", html.EscapeString(name)))
	} else {
		sb.WriteString("🔐 You are not logged in. Use /login to book appointments.\n\n")
	}

	sb.WriteString("Commands:\n" +
		"/doctors - Find a therapist\n" +
		"/mybookings - My upcoming appointments\n")
	if session != nil {
		sb.WriteString("/logout - Log out\n")
	} else {
		sb.WriteString("/login - Log in\n")
	}
	sb.WriteString("/help - Help")

	return sb.String()
}

// BuildDoctorsScreen формирует страницу списка терапевтов
func BuildDoctorsScreen(doctors []model.Doctor, page int) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if len(doctors) == 0 {
		kb.AddBackToMainButton()
		return "👩‍⚕️ No therapists are available right now.", kb.Build()
	}

	start, end, page, totalPages := keyboard.Page(len(doctors), page, DoctorsPerPage)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👩‍⚕️ <b>Therapists</b> (%d)\n\n", len(doctors)))

	for i := start; i < end; i++ {
		d := doctors[i]
		sb.WriteString(formatting.FormatDoctorShort(d, i+1))
		sb.WriteString("\n\n")

		if d.ID != "" {
			kb.Row(keyboard.Button(fmt.Sprintf("%d. %s", i+1, d.Name), "doctor:"+d.ID.String()))
		}
	}
	sb.WriteString("Choose a therapist:")

	kb.AddPagination("doctors_page:", page, totalPages)
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildDoctorProfileScreen формирует профиль терапевта
func BuildDoctorProfileScreen(profile *model.DoctorProfile) (string, *models.InlineKeyboardMarkup) {
	id := profile.Doctor.ID.String()

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("📅 Schedule", "schedule:"+id)).
		Row(
			keyboard.Button("💬 Reviews", "reviews:"+id),
			keyboard.Button("✍️ Write a review", "review_new:"+id),
		).
		AddBackButton("doctors_page:0")

	return formatting.FormatDoctorProfile(profile), kb.Build()
}

// BuildScheduleScreen формирует расписание по дням.
// Слоты адресуются версией снимка и индексами дня и слота в нём.
func BuildScheduleScreen(doctorName string, sched *model.DoctorSchedule, version int64, expandedDay int) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatSchedule(doctorName, sched)
	kb := keyboard.NewBuilder()

	if sched != nil {
		for dayIdx, day := range sched.Days {
			kb.Row(keyboard.Button("📆 "+day.Heading, "noop"))

			shown := day.Slots
			if dayIdx != expandedDay && len(shown) > SlotsPerDay {
				shown = shown[:SlotsPerDay]
			}

			buttons := make([]models.InlineKeyboardButton, 0, len(shown))
			for slotIdx, slot := range shown {
				data := "noop"
				if slot.Selectable() {
					data = fmt.Sprintf("slot:%d:%d:%d", version, dayIdx, slotIdx)
				}
				buttons = append(buttons, keyboard.Button(formatting.FormatSlotLabel(slot), data))
			}
			kb.Grid(SlotsPerRow, buttons...)

			if hidden := len(day.Slots) - len(shown); hidden > 0 {
				kb.Row(keyboard.Button(fmt.Sprintf("➕ More (%d)", hidden), fmt.Sprintf("day_more:%d:%d", version, dayIdx)))
			}
		}

		kb.Row(
			keyboard.Button("🔄 Refresh", "schedule:"+sched.DoctorID),
			keyboard.BackButton("doctor:"+sched.DoctorID),
		)
	}
	kb.AddBackToMainButton()

	return text, kb.Build()
}

// BuildBookingScreen формирует форму записи на выбранный слот
func BuildBookingScreen(slot model.Slot, form booking.FormData, advisory string) (string, *models.InlineKeyboardMarkup) {
	text := formatting.FormatBookingSummary(slot, form.Name, form.Phone, form.Email, form.PaymentMethod, advisory)
	if !form.CanSubmit() {
		text += "\n\n✏️ Enter your name and phone to continue."
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✏️ Enter details", "book_form")).
		Row(
			paymentButton(model.PaymentCash, form.PaymentMethod),
			paymentButton(model.PaymentVisa, form.PaymentMethod),
		).
		AddRows(keyboard.ConfirmCancelButtons("book_confirm", "book_cancel"))

	return text, kb.Build()
}

// BuildSubmittingScreen форма во время отправки: без кнопок
func BuildSubmittingScreen(slot model.Slot, form booking.FormData, advisory string) string {
	text := formatting.FormatBookingSummary(slot, form.Name, form.Phone, form.Email, form.PaymentMethod, advisory)
	return text + "\n\n⏳ Booking..."
}

// BuildBookedScreen итог успешной записи
func BuildBookedScreen(slot model.Slot, outcome *booking.Outcome, doctorID string) (string, *models.InlineKeyboardMarkup) {
	icon := "✅"
	if outcome.Status == booking.OutcomePendingPayment {
		icon = "⏳"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s <b>%s</b>\n\n", icon, outcome.Message()))
	sb.WriteString(fmt.Sprintf("🕐 %s\n", formatting.FormatDateTime(slot.Instant)))
	sb.WriteString(fmt.Sprintf("💳 %s\n", formatting.PaymentLabel(outcome.Request.PaymentMethod)))
	if outcome.Confirmation != nil && outcome.Confirmation.AppointmentID != "" {
		sb.WriteString(fmt.Sprintf("📝 Appointment #%s\n", html.EscapeString(outcome.Confirmation.AppointmentID.String())))
	}
	sb.WriteString("\nSee all your appointments: /mybookings")

	kb := keyboard.NewBuilder()
	if doctorID != "" {
		kb.Row(keyboard.Button("📅 Back to schedule", "schedule:"+doctorID))
	}
	kb.Row(keyboard.Button("📋 My appointments", "my_bookings"))
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// BuildReviewsScreen формирует список отзывов
func BuildReviewsScreen(doctorID string, reviews []model.Review) (string, *models.InlineKeyboardMarkup) {
	text := "💬 <b>Reviews</b>\n\n" + formatting.FormatReviews(reviews, ReviewsShown)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("✍️ Write a review", "review_new:"+doctorID)).
		AddBackButton("doctor:" + doctorID)

	return text, kb.Build()
}

// BuildRatingScreen выбор оценки для отзыва
func BuildRatingScreen(doctorID string) (string, *models.InlineKeyboardMarkup) {
	buttons := make([]models.InlineKeyboardButton, 0, 5)
	for n := 1; n <= 5; n++ {
		buttons = append(buttons, keyboard.Button(fmt.Sprintf("%d ★", n), fmt.Sprintf("review_rate:%s:%d", doctorID, n)))
	}

	kb := keyboard.NewBuilder().
		Row(buttons...).
		AddBackButton("doctor:" + doctorID)

	return "✍️ <b>New review</b>\n\nHow would you rate your sessions?", kb.Build()
}

func paymentButton(method, selected model.PaymentMethod) models.InlineKeyboardButton {
	label := formatting.PaymentLabel(method)
	if method == selected {
		label = "✔️ " + label
	}
	return keyboard.Button(label, "pay:"+string(method))
}
