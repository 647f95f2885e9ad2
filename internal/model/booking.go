package model

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentVisa PaymentMethod = "VISA"
)

// ParsePaymentMethod приводит способ оплаты к верхнему регистру
// Пустое значение означает CASH
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case "":
		return PaymentCash, nil
	case PaymentCash, PaymentVisa:
		return m, nil
	default:
		return "", fmt.Errorf("unknown payment method %q", s)
	}
}

// AppointmentStatus статус записи на стороне backend
type AppointmentStatus string

const (
	AppointmentAvailable AppointmentStatus = "AVAILABLE"
	AppointmentBooked    AppointmentStatus = "BOOKED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

// BookingRequest данные одной попытки записи
type BookingRequest struct {
	SlotID        string        `json:"-"`
	PatientID     string        `json:"patientId"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// BookingConfirmation ответ backend на успешную запись
type BookingConfirmation struct {
	AppointmentID ExternalID        `json:"id"`
	Status        AppointmentStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"paymentMethod"`
}
