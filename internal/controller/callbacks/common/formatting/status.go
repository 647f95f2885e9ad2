package formatting

import "github.com/Freeeeeet/paxify_bot/internal/model"

// StatusDisplay отображение статуса записи
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса записи
func GetAppointmentStatusDisplay(status model.AppointmentStatus) StatusDisplay {
	displays := map[model.AppointmentStatus]StatusDisplay{
		model.AppointmentAvailable: {"🟢", "Available"},
		model.AppointmentBooked:    {"✅", "Booked"},
		model.AppointmentCompleted: {"✔️", "Completed"},
		model.AppointmentCancelled: {"❌", "Cancelled"},
		model.AppointmentNoShow:    {"🚫", "No show"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "Unknown"}
}

// SlotMark отметка слота на кнопке
func SlotMark(slot model.Slot) string {
	switch {
	case slot.Booked:
		return "🔴"
	case slot.IsPast:
		return "⚫️"
	default:
		return "🟢"
	}
}
