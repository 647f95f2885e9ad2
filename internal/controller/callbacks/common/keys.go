package common

// Ключи временных данных пользователя в StateManager
const (
	KeySchedule        = "schedule"         // *model.DoctorSchedule на экране
	KeyScheduleVersion = "schedule_version" // версия снимка, с которой он был загружен
	KeyBookingMessage  = "booking_message"  // ID сообщения с формой записи
	KeyLoginEmail      = "login_email"
	KeyReviewDoctor    = "review_doctor"
	KeyReviewRating    = "review_rating"
)

// CounterSchedule счётчик загрузок расписания: поздний ответ старой загрузки отбрасывается
const CounterSchedule = "schedule"

// DoctorNameKey имя врача, показанное в профиле
func DoctorNameKey(doctorID string) string {
	return "doctor_name:" + doctorID
}
