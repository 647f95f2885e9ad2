package common

import (
	"fmt"
	"testing"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callbacks(kb *models.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			out = append(out, btn.CallbackData)
		}
	}
	return out
}

func TestBuildMainMenu(t *testing.T) {
	guest := BuildMainMenu(nil)
	assert.Contains(t, guest, "/login")
	assert.NotContains(t, guest, "/logout")

	user := BuildMainMenu(&model.PatientSession{Email: "a&b@example.com"})
	assert.Contains(t, user, "a&amp;b@example.com")
	assert.Contains(t, user, "/logout")
}

func TestBuildDoctorsScreen_Pagination(t *testing.T) {
	doctors := make([]model.Doctor, 7)
	for i := range doctors {
		doctors[i] = model.Doctor{ID: model.ExternalID(fmt.Sprint(i + 1)), Name: fmt.Sprintf("Doctor %d", i+1)}
	}

	text, kb := BuildDoctorsScreen(doctors, 1)
	assert.Contains(t, text, "(7)")

	data := callbacks(kb)
	assert.Contains(t, data, "doctor:6")
	assert.Contains(t, data, "doctor:7")
	assert.NotContains(t, data, "doctor:1")
	assert.Contains(t, data, "doctors_page:0")
	assert.NotContains(t, data, "doctors_page:2")
	assert.Equal(t, "back_to_main", data[len(data)-1])

	// Номер страницы за пределами списка приводится к последней
	_, kb = BuildDoctorsScreen(doctors, 9)
	assert.Contains(t, callbacks(kb), "doctor:7")
}

func TestBuildDoctorsScreen_Empty(t *testing.T) {
	text, kb := BuildDoctorsScreen(nil, 0)
	assert.Contains(t, text, "No therapists")
	assert.Equal(t, []string{"back_to_main"}, callbacks(kb))
}

func daySchedule(n int, booked int) *model.DoctorSchedule {
	base := time.Date(2030, 5, 6, 9, 0, 0, 0, time.UTC)
	slots := make([]model.Slot, n)
	for i := range slots {
		slots[i] = model.Slot{
			ID:      fmt.Sprint(100 + i),
			Instant: base.Add(time.Duration(i) * 30 * time.Minute),
			Booked:  i == booked,
		}
	}
	return &model.DoctorSchedule{
		DoctorID: "7",
		Days:     []model.DayGroup{{DayKey: "2030-05-06", Heading: "Monday, May 6", Slots: slots}},
	}
}

func TestBuildScheduleScreen_CollapsedDay(t *testing.T) {
	_, kb := BuildScheduleScreen("Dr. Smith", daySchedule(8, 2), 3, NoExpandedDay)

	data := callbacks(kb)
	assert.Contains(t, data, "slot:3:0:0")
	assert.Contains(t, data, "slot:3:0:5")
	assert.NotContains(t, data, "slot:3:0:2", "booked slot is not selectable")
	assert.NotContains(t, data, "slot:3:0:6", "slots after the first six are hidden")
	assert.Contains(t, data, "day_more:3:0")
	assert.Contains(t, data, "schedule:7")
	assert.Contains(t, data, "doctor:7")

	// Заголовок дня, два ряда по три слота, "More", навигация, главное меню
	require.Len(t, kb.InlineKeyboard, 6)
	assert.Len(t, kb.InlineKeyboard[1], SlotsPerRow)
	assert.Equal(t, "➕ More (2)", kb.InlineKeyboard[3][0].Text)
}

func TestBuildScheduleScreen_ExpandedDay(t *testing.T) {
	_, kb := BuildScheduleScreen("Dr. Smith", daySchedule(8, -1), 4, 0)

	data := callbacks(kb)
	assert.Contains(t, data, "slot:4:0:7")
	assert.NotContains(t, data, "day_more:4:0")
}

func TestBuildScheduleScreen_NoMoreButtonForShortDay(t *testing.T) {
	_, kb := BuildScheduleScreen("Dr. Smith", daySchedule(SlotsPerDay, -1), 1, NoExpandedDay)
	assert.NotContains(t, callbacks(kb), "day_more:1:0")
}

func TestBuildBookingScreen(t *testing.T) {
	slot := model.Slot{ID: "55", Instant: time.Date(2030, 5, 6, 9, 0, 0, 0, time.UTC)}

	text, kb := BuildBookingScreen(slot, booking.FormData{PaymentMethod: model.PaymentVisa}, "")
	assert.Contains(t, text, "Enter your name and phone")

	paymentRow := kb.InlineKeyboard[1]
	require.Len(t, paymentRow, 2)
	assert.Equal(t, "pay:CASH", paymentRow[0].CallbackData)
	assert.NotContains(t, paymentRow[0].Text, "✔️")
	assert.Equal(t, "pay:VISA", paymentRow[1].CallbackData)
	assert.Contains(t, paymentRow[1].Text, "✔️")

	data := callbacks(kb)
	assert.Contains(t, data, "book_confirm")
	assert.Contains(t, data, "book_cancel")

	text, _ = BuildBookingScreen(slot, booking.FormData{Name: "Ann", Phone: "+201001234567", PaymentMethod: model.PaymentVisa}, "Waiting for payment")
	assert.NotContains(t, text, "Enter your name and phone")
	assert.Contains(t, text, "Waiting for payment")
}

func TestBuildBookedScreen(t *testing.T) {
	slot := model.Slot{ID: "55", Instant: time.Date(2030, 5, 6, 9, 0, 0, 0, time.UTC)}
	outcome := &booking.Outcome{
		Status:       booking.OutcomePendingPayment,
		Request:      model.BookingRequest{SlotID: "55", PatientID: "9", PaymentMethod: model.PaymentVisa},
		Confirmation: &model.BookingConfirmation{AppointmentID: "321"},
	}

	text, kb := BuildBookedScreen(slot, outcome, "7")
	assert.Contains(t, text, "⏳")
	assert.Contains(t, text, "#321")
	assert.Contains(t, callbacks(kb), "schedule:7")

	_, kb = BuildBookedScreen(slot, outcome, "")
	assert.Equal(t, []string{"my_bookings", "back_to_main"}, callbacks(kb))
}

func TestBuildRatingScreen(t *testing.T) {
	_, kb := BuildRatingScreen("7")

	require.Len(t, kb.InlineKeyboard[0], 5)
	assert.Equal(t, "review_rate:7:1", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "review_rate:7:5", kb.InlineKeyboard[0][4].CallbackData)
}
