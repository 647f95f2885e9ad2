package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// ExternalID идентификатор из backend: число или строка
type ExternalID string

func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ExternalID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ExternalID(n.String())
	return nil
}

func (id ExternalID) String() string {
	return string(id)
}

type Doctor struct {
	ID                ExternalID `json:"id"`
	Name              string     `json:"name"`
	Title             string     `json:"title"`
	Type              string     `json:"type"`
	Specialty         string     `json:"specialty"`
	Bio               string     `json:"bio"`
	Address           string     `json:"address"`
	ConsultationFee   *float64   `json:"consultationFee"`
	ProfilePictureURL string     `json:"profilePictureUrl"`
}

// DoctorProfile публичный профиль врача с рейтингом
type DoctorProfile struct {
	Doctor        Doctor   `json:"doctor"`
	AverageRating *float64 `json:"averageRating"`
	ReviewsCount  int      `json:"reviewsCount"`
}

type ReviewAuthor struct {
	Name string `json:"name"`
}

type Review struct {
	ID      ExternalID    `json:"id"`
	Rating  int           `json:"rating"`
	Comment string        `json:"comment"`
	Patient *ReviewAuthor `json:"patient,omitempty"`
}

// Appointment запись пациента для списка "Мои записи"
type Appointment struct {
	ID              string            `json:"id"`
	Instant         time.Time         `json:"instant"`
	Status          AppointmentStatus `json:"status"`
	SessionType     string            `json:"session_type"`
	DurationMinutes int               `json:"duration_minutes"`
}
