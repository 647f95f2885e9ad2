package paxify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// FetchDoctorSlots свободные и занятые слоты врача в сыром виде
func (c *Client) FetchDoctorSlots(ctx context.Context, doctorID string) ([]model.RawSlot, error) {
	path := fmt.Sprintf("/api/appointments/doctor/%s/available", url.PathEscape(doctorID))

	var slots listEnvelope[model.RawSlot]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &slots); err != nil {
		return nil, fmt.Errorf("fetch doctor slots: %w", err)
	}
	return slots, nil
}

// SubmitBooking записывает пациента на слот
func (c *Client) SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
	path := fmt.Sprintf("/api/appointments/%s/book", url.PathEscape(req.SlotID))

	var resp model.BookingConfirmation
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, fmt.Errorf("submit booking: %w", err)
	}
	if resp.PaymentMethod == "" {
		resp.PaymentMethod = req.PaymentMethod
	}
	return &resp, nil
}

// PatientAppointments все записи пациента
func (c *Client) PatientAppointments(ctx context.Context, patientID string) ([]model.RawSlot, error) {
	path := fmt.Sprintf("/api/appointments/patient/%s", url.PathEscape(patientID))

	var items listEnvelope[model.RawSlot]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, fmt.Errorf("fetch patient appointments: %w", err)
	}
	return items, nil
}
