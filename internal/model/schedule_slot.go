package model

import "time"

// RawSlot запись о слоте в том виде, в каком её вернул backend
// Имена полей и их форма у разных эндпоинтов отличаются
type RawSlot map[string]any

// Slot нормализованный слот расписания врача
// IsPast вычисляется один раз при нормализации и не пересчитывается
type Slot struct {
	ID      string    `json:"id"`
	Instant time.Time `json:"instant"`
	Booked  bool      `json:"booked"`
	IsPast  bool      `json:"is_past"`
}

// Selectable можно ли выбрать слот для записи
func (s Slot) Selectable() bool {
	return !s.Booked && !s.IsPast
}

// DayGroup слоты одного календарного дня
type DayGroup struct {
	DayKey  string `json:"day_key"` // YYYY-MM-DD
	Heading string `json:"heading"`
	Slots   []Slot `json:"slots"`
}

// FindSlot ищет слот по ID
func (g DayGroup) FindSlot(id string) (Slot, bool) {
	for _, s := range g.Slots {
		if s.ID == id {
			return s, true
		}
	}
	return Slot{}, false
}

// DoctorSchedule снимок расписания врача на момент загрузки
type DoctorSchedule struct {
	DoctorID  string     `json:"doctor_id"`
	Days      []DayGroup `json:"days"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// FindSlot ищет слот по ID во всех днях снимка
func (s *DoctorSchedule) FindSlot(id string) (Slot, bool) {
	if s == nil {
		return Slot{}, false
	}
	for _, day := range s.Days {
		if slot, ok := day.FindSlot(id); ok {
			return slot, true
		}
	}
	return Slot{}, false
}

// FindDay ищет день по ключу
func (s *DoctorSchedule) FindDay(dayKey string) (DayGroup, bool) {
	if s == nil {
		return DayGroup{}, false
	}
	for _, day := range s.Days {
		if day.DayKey == dayKey {
			return day, true
		}
	}
	return DayGroup{}, false
}
