package schedule

import "time"

// Поля, в которых backend может прислать время слота.
// Порядок важен: берётся первое присутствующее непустое значение.
var timeFields = []string{
	"appointmentDateTime",
	"dateTime",
	"startTime",
	"start",
	"datetime",
	"time",
}

// Поля с идентификатором записи
var idFields = []string{"id", "appointmentId"}

// Булевы флаги занятости
var bookedFlags = []string{"booked", "isBooked"}

const statusField = "status"

// Статус свободного слота, сравнивается без учёта регистра
const statusAvailable = "AVAILABLE"

// Форматы строкового времени без зоны, интерпретируются в локальной зоне
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Форматы с явной зоной
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
}

const dayKeyLayout = "2006-01-02"
