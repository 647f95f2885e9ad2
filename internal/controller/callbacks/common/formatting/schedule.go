package formatting

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// FormatSchedule текст расписания врача по дням
func FormatSchedule(doctorName string, sched *model.DoctorSchedule) string {
	var sb strings.Builder

	sb.WriteString("📅 <b>Schedule")
	if doctorName != "" {
		sb.WriteString(" of " + html.EscapeString(doctorName))
	}
	sb.WriteString("</b>\n\n")

	if sched == nil || len(sched.Days) == 0 {
		sb.WriteString("No available slots in the coming days.")
		return sb.String()
	}

	for _, day := range sched.Days {
		free := 0
		for _, s := range day.Slots {
			if s.Selectable() {
				free++
			}
		}
		sb.WriteString(fmt.Sprintf("<b>%s</b> · %d free of %d\n", html.EscapeString(day.Heading), free, len(day.Slots)))
	}

	sb.WriteString("\n🟢 free  🔴 booked  ⚫️ past\nChoose a time below.")
	return sb.String()
}

// FormatSlotLabel текст кнопки слота
func FormatSlotLabel(slot model.Slot) string {
	return SlotMark(slot) + " " + FormatTime(slot.Instant)
}

// FormatBookingSummary экран подтверждения записи
func FormatBookingSummary(slot model.Slot, name, phone, email string, method model.PaymentMethod, advisory string) string {
	var sb strings.Builder

	sb.WriteString("📝 <b>Book appointment</b>\n\n")
	sb.WriteString(fmt.Sprintf("🕐 %s\n", FormatDateTime(slot.Instant)))
	sb.WriteString(fmt.Sprintf("👤 Name: %s\n", orDash(name)))
	sb.WriteString(fmt.Sprintf("📞 Phone: %s\n", orDash(phone)))
	sb.WriteString(fmt.Sprintf("✉️ Email: %s\n", orDash(email)))
	sb.WriteString(fmt.Sprintf("💳 Payment: %s\n", PaymentLabel(method)))

	if advisory != "" {
		sb.WriteString("\n⏳ <i>" + html.EscapeString(advisory) + "</i>")
	}

	return sb.String()
}

// PaymentLabel название способа оплаты
func PaymentLabel(method model.PaymentMethod) string {
	switch method {
	case model.PaymentVisa:
		return "Visa card"
	default:
		return "Cash at the clinic"
	}
}

// FormatAppointments список предстоящих записей пациента
func FormatAppointments(appts []model.Appointment) string {
	if len(appts) == 0 {
		return "📅 You have no upcoming appointments.\n\nFind a therapist: /doctors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 <b>Upcoming appointments</b> (%d)\n\n", len(appts)))

	for i, a := range appts {
		status := GetAppointmentStatusDisplay(a.Status)
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, status.Emoji, FormatDateTime(a.Instant)))

		var details []string
		if a.SessionType != "" {
			details = append(details, html.EscapeString(a.SessionType))
		}
		if d := FormatDuration(a.DurationMinutes); d != "" {
			details = append(details, d)
		}
		details = append(details, status.Text)
		sb.WriteString("   " + strings.Join(details, " · ") + "\n")
	}

	return sb.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return html.EscapeString(s)
}
