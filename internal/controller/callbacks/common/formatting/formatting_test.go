package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestStars(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{2.4, "★★☆☆☆"},
		{4.5, "★★★★★"},
		{3.6, "★★★★☆"},
		{7, "★★★★★"},
		{-1, "☆☆☆☆☆"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Stars(tt.rating), "rating %v", tt.rating)
	}
}

func TestFormatFeeAndRating(t *testing.T) {
	assert.Equal(t, "", FormatFee(nil))
	assert.Equal(t, "L.E 450", FormatFee(ptr(450)))
	assert.Equal(t, "L.E 99.5", FormatFee(ptr(99.5)))

	assert.Equal(t, "", FormatRating(nil))
	assert.Equal(t, "4.3 / 5", FormatRating(ptr(4.26)))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "", FormatDuration(0))
	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "1 h", FormatDuration(60))
	assert.Equal(t, "1 h 30 min", FormatDuration(90))
}

func TestDoctorTitle(t *testing.T) {
	assert.Equal(t, "Consultant", DoctorTitle(model.Doctor{Type: "DOCTOR", Title: "Dr."}))
	assert.Equal(t, "Therapist", DoctorTitle(model.Doctor{Type: "THERAPIST", Title: "Therapist"}))
}

func TestFormatDoctorProfile(t *testing.T) {
	p := &model.DoctorProfile{
		Doctor: model.Doctor{
			Name:            "Nour <Ali>",
			Type:            "DOCTOR",
			Specialty:       "CBT",
			ConsultationFee: ptr(450),
		},
		AverageRating: ptr(4.5),
		ReviewsCount:  12,
	}

	text := FormatDoctorProfile(p)
	assert.Contains(t, text, "Nour &lt;Ali&gt;")
	assert.Contains(t, text, "Consultant")
	assert.Contains(t, text, "★★★★★ 4.5 / 5")
	assert.Contains(t, text, "From 12 Visitors")
	assert.Contains(t, text, "L.E 450")
}

func TestFormatReviews(t *testing.T) {
	assert.Equal(t, "⭐ No reviews yet.", FormatReviews(nil, 5))

	reviews := []model.Review{
		{Rating: 5, Comment: "Great", Patient: &model.ReviewAuthor{Name: "Anna"}},
		{Rating: 3},
		{Rating: 4},
	}
	text := FormatReviews(reviews, 2)
	assert.Contains(t, text, "Reviews</b> (3)")
	assert.Contains(t, text, "★★★★★ <b>Anna</b>")
	assert.Contains(t, text, "★★★☆☆ <b>Visitor</b>")
	assert.Contains(t, text, "and 1 more")
}

func TestFormatSchedule(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	sched := &model.DoctorSchedule{Days: []model.DayGroup{
		{DayKey: "2026-10-18", Heading: "Today", Slots: []model.Slot{
			{ID: "1", Instant: at},
			{ID: "2", Instant: at.Add(time.Hour), Booked: true},
		}},
	}}

	text := FormatSchedule("Dr. Nour", sched)
	assert.Contains(t, text, "Schedule of Dr. Nour")
	assert.Contains(t, text, "<b>Today</b> · 1 free of 2")

	assert.Contains(t, FormatSchedule("", &model.DoctorSchedule{}), "No available slots")
}

func TestFormatSlotLabel(t *testing.T) {
	at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, "🟢 09:30", FormatSlotLabel(model.Slot{Instant: at}))
	assert.Equal(t, "🔴 09:30", FormatSlotLabel(model.Slot{Instant: at, Booked: true}))
	assert.Equal(t, "⚫️ 09:30", FormatSlotLabel(model.Slot{Instant: at, IsPast: true}))
}

func TestFormatBookingSummary(t *testing.T) {
	slot := model.Slot{Instant: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}

	text := FormatBookingSummary(slot, "Anna", "", "", model.PaymentVisa, "Your booking is pending payment confirmation.")
	assert.Contains(t, text, "Mon, 19.10.2026 09:00")
	assert.Contains(t, text, "Name: Anna")
	assert.Contains(t, text, "Phone: -")
	assert.Contains(t, text, "Payment: Visa card")
	assert.Contains(t, text, "pending payment confirmation")
}

func TestFormatAppointments(t *testing.T) {
	assert.Contains(t, FormatAppointments(nil), "no upcoming appointments")

	text := FormatAppointments([]model.Appointment{{
		Instant:         time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Status:          model.AppointmentBooked,
		SessionType:     "ONLINE",
		DurationMinutes: 50,
	}})
	assert.Contains(t, text, "1. ✅ Mon, 19.10.2026 09:00")
	assert.Contains(t, text, "ONLINE · 50 min · Booked")
}
