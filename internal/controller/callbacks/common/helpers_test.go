package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
	"github.com/Freeeeeet/paxify_bot/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackArgs(t *testing.T) {
	args, err := CallbackArgs("review_rate:7:5", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "5"}, args)

	_, err = CallbackArgs("review_rate:7", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = CallbackArgs("review_rate::5", 2)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseStringFromCallback(t *testing.T) {
	id, err := ParseStringFromCallback("doctor:abc-17")
	require.NoError(t, err)
	assert.Equal(t, "abc-17", id)

	_, err = ParseStringFromCallback("doctor:")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseIntsFromCallback(t *testing.T) {
	vals, err := ParseIntsFromCallback("slot:3:0:5", 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 0, 5}, vals)

	_, err = ParseIntsFromCallback("slot:3:x:5", 3)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ParseIntsFromCallback("slot:3:0", 3)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not logged in", service.ErrNotLoggedIn, "🔐 You must be logged in to book an appointment. Use /login"},
		{"wrapped form", fmt.Errorf("confirm: %w", booking.ErrFormIncomplete), "✏️ Please enter your name and phone first"},
		{"slot busy", booking.ErrSlotBusy, "⏳ Someone is booking this slot right now. Try again in a moment"},
		{"remote", &booking.RemoteError{Message: "Slot already taken"}, "❌ Slot already taken"},
		{"unauthorized", &paxify.APIError{StatusCode: 401}, "🔐 Your session has expired. Use /login"},
		{"api message", fmt.Errorf("doctors: %w", &paxify.APIError{StatusCode: 500, Message: "Maintenance"}), "❌ Maintenance"},
		{"api without message", &paxify.APIError{StatusCode: 502}, "❌ Something went wrong. Try again later"},
		{"stale schedule", ErrScheduleExpired, "⌛ This schedule is outdated. Open it again"},
		{"unknown", errors.New("boom"), "❌ Something went wrong. Try again later"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}
