package handlers

// Константы валидации формы записи
const (
	// Имя пациента
	NameMinLength = 2
	NameMaxLength = 100

	// Комментарий к отзыву
	ReviewCommentMaxLength = 1000

	// Пропуск необязательного поля
	SkipInput = "-"
)
