package schedule

import (
	"testing"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestIsBooked(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawSlot
		want bool
	}{
		{"status AVAILABLE", model.RawSlot{"status": "AVAILABLE"}, false},
		{"status available lowercase", model.RawSlot{"status": "available"}, false},
		{"status BOOKED", model.RawSlot{"status": "BOOKED"}, true},
		{"status CANCELLED", model.RawSlot{"status": "CANCELLED"}, true},
		{"status with spaces is not available", model.RawSlot{"status": " AVAILABLE"}, true},
		{"no status no flags", model.RawSlot{}, false},
		{"null status", model.RawSlot{"status": nil}, false},
		{"booked flag", model.RawSlot{"booked": true, "status": "AVAILABLE"}, true},
		{"isBooked flag", model.RawSlot{"isBooked": true}, true},
		{"false flag with available", model.RawSlot{"booked": false, "status": "Available"}, false},
		{"numeric flag", model.RawSlot{"isBooked": 1.0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBooked(tt.raw))
		})
	}
}

func TestClassify_PastIsStrict(t *testing.T) {
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)

	_, past := Classify(model.RawSlot{}, now, now)
	assert.False(t, past, "slot starting exactly now is not past")

	_, past = Classify(model.RawSlot{}, now.Add(-time.Second), now)
	assert.True(t, past)
}
