package booking

import (
	"testing"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_CanSubmit(t *testing.T) {
	tests := []struct {
		name  string
		fill  func(f *Form)
		valid bool
	}{
		{
			name:  "empty",
			fill:  func(f *Form) {},
			valid: false,
		},
		{
			name:  "name only",
			fill:  func(f *Form) { f.SetName("Anna") },
			valid: false,
		},
		{
			name:  "phone only",
			fill:  func(f *Form) { f.SetPhone("+201001234567") },
			valid: false,
		},
		{
			name: "whitespace name",
			fill: func(f *Form) {
				f.SetName("   ")
				f.SetPhone("+201001234567")
			},
			valid: false,
		},
		{
			name: "name and phone",
			fill: func(f *Form) {
				f.SetName("Anna")
				f.SetPhone("+201001234567")
			},
			valid: true,
		},
		{
			name: "email is optional",
			fill: func(f *Form) {
				f.SetName("Anna")
				f.SetPhone("+201001234567")
				f.SetEmail("")
			},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewForm()
			tt.fill(f)
			assert.Equal(t, tt.valid, f.CanSubmit())
		})
	}
}

func TestForm_CanSubmitFollowsEdits(t *testing.T) {
	f := NewForm()
	f.SetName("Anna")
	f.SetPhone("123")
	require.True(t, f.CanSubmit())

	f.SetPhone("")
	assert.False(t, f.CanSubmit())
}

func TestForm_SetPaymentMethod(t *testing.T) {
	f := NewForm()
	assert.Equal(t, model.PaymentCash, f.Snapshot().PaymentMethod)

	require.NoError(t, f.SetPaymentMethod("visa"))
	assert.Equal(t, model.PaymentVisa, f.Snapshot().PaymentMethod)

	err := f.SetPaymentMethod("paypal")
	require.Error(t, err)
	assert.Equal(t, model.PaymentVisa, f.Snapshot().PaymentMethod)

	require.NoError(t, f.SetPaymentMethod(""))
	assert.Equal(t, model.PaymentCash, f.Snapshot().PaymentMethod)
}

func TestForm_Reset(t *testing.T) {
	f := NewForm()
	f.SetName("Anna")
	f.SetPhone("123")
	f.SetEmail("anna@example.com")
	require.NoError(t, f.SetPaymentMethod("VISA"))

	f.Reset()

	assert.Equal(t, FormData{PaymentMethod: model.PaymentCash}, f.Snapshot())
	assert.False(t, f.CanSubmit())
}
