package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Вход
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Форма записи
	StateBookingName  UserState = "booking_name"
	StateBookingPhone UserState = "booking_phone"
	StateBookingEmail UserState = "booking_email"

	// Отзыв
	StateReviewComment UserState = "review_comment"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State    UserState
	Data     map[string]interface{} // Временные данные для текущего диалога
	Counters map[string]int64
}

func newUserData(state UserState) *UserData {
	return &UserData{
		State:    state,
		Data:     make(map[string]interface{}),
		Counters: make(map[string]int64),
	}
}
