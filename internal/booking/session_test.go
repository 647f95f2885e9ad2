package booking

import (
	"testing"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SelectSlot(t *testing.T) {
	instant := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		slot    model.Slot
		wantErr error
	}{
		{name: "free future slot", slot: model.Slot{ID: "a", Instant: instant}},
		{name: "booked slot", slot: model.Slot{ID: "b", Instant: instant, Booked: true}, wantErr: ErrSlotUnavailable},
		{name: "past slot", slot: model.Slot{ID: "c", Instant: instant, IsPast: true}, wantErr: ErrSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := NewSession(staticToken("token"))
			err := sess.SelectSlot(tt.slot)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, StateIdle, sess.State())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StateSlotSelected, sess.State())
			got, ok := sess.SelectedSlot()
			assert.True(t, ok)
			assert.Equal(t, tt.slot, got)
		})
	}
}

func TestSession_Cancel(t *testing.T) {
	sess := readySession(t, "VISA")

	var seen []string
	sess.OnAdvisory(func(text string) { seen = append(seen, text) })

	attempt, err := sess.begin()
	require.NoError(t, err)
	sess.showAdvisory(attempt, PendingPaymentAdvisory)

	sess.Cancel()

	assert.Equal(t, StateIdle, sess.State())
	assert.Empty(t, sess.Advisory())
	assert.Equal(t, FormData{PaymentMethod: model.PaymentCash}, sess.Form().Snapshot())
	_, selected := sess.SelectedSlot()
	assert.False(t, selected)
	assert.Equal(t, []string{PendingPaymentAdvisory, ""}, seen)

	// поздний результат отменённой попытки игнорируется
	sess.succeed(attempt)
	assert.Equal(t, StateIdle, sess.State())
}

func TestSession_BeginWithoutSlot(t *testing.T) {
	sess := NewSession(staticToken("token"))
	_, err := sess.begin()
	assert.ErrorIs(t, err, ErrNoSlotSelected)
}
