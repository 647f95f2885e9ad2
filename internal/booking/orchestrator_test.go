package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookerFunc func(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error)

func (f bookerFunc) SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
	return f(ctx, req)
}

type stubDecoder struct {
	identity *model.Identity
	err      error
}

func (d stubDecoder) DecodeIdentity(string) (*model.Identity, error) {
	return d.identity, d.err
}

type remoteFailure struct {
	msg string
}

func (e remoteFailure) Error() string         { return "remote: " + e.msg }
func (e remoteFailure) RemoteMessage() string { return e.msg }

var (
	futureSlot = model.Slot{ID: "slot-1", Instant: time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)}
	patient    = &model.Identity{PatientID: "p-42", Role: model.RolePatient}
)

func staticToken(token string) CredentialProvider {
	return CredentialFunc(func(context.Context) (string, error) { return token, nil })
}

func readySession(t *testing.T, method string) *Session {
	t.Helper()

	sess := NewSession(staticToken("token"))
	require.NoError(t, sess.SelectSlot(futureSlot))
	sess.Form().SetName("Anna")
	sess.Form().SetPhone("+201001234567")
	require.NoError(t, sess.Form().SetPaymentMethod(method))
	return sess
}

func countingBooker(calls *int) Booker {
	return bookerFunc(func(_ context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
		*calls++
		return &model.BookingConfirmation{AppointmentID: model.ExternalID(req.SlotID), Status: model.AppointmentBooked}, nil
	})
}

func TestConfirmBooking_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		session func(t *testing.T) *Session
		decoder IdentityDecoder
		wantErr error
	}{
		{
			name: "no slot selected",
			session: func(t *testing.T) *Session {
				s := NewSession(staticToken("token"))
				s.Form().SetName("Anna")
				s.Form().SetPhone("1")
				return s
			},
			decoder: stubDecoder{identity: patient},
			wantErr: ErrNoSlotSelected,
		},
		{
			name: "no slot wins over missing credential",
			session: func(t *testing.T) *Session {
				return NewSession(staticToken(""))
			},
			decoder: stubDecoder{identity: patient},
			wantErr: ErrNoSlotSelected,
		},
		{
			name: "no credential",
			session: func(t *testing.T) *Session {
				s := readySession(t, "CASH")
				s.creds = staticToken("")
				return s
			},
			decoder: stubDecoder{identity: patient},
			wantErr: ErrNotAuthenticated,
		},
		{
			name: "undecodable credential",
			session: func(t *testing.T) *Session {
				return readySession(t, "CASH")
			},
			decoder: stubDecoder{err: errors.New("malformed")},
			wantErr: ErrIdentityUnresolvable,
		},
		{
			name: "credential without patient id",
			session: func(t *testing.T) *Session {
				return readySession(t, "CASH")
			},
			decoder: stubDecoder{identity: &model.Identity{Role: model.RolePatient}},
			wantErr: ErrIdentityUnresolvable,
		},
		{
			name: "form incomplete",
			session: func(t *testing.T) *Session {
				s := readySession(t, "CASH")
				s.Form().SetPhone("")
				return s
			},
			decoder: stubDecoder{identity: patient},
			wantErr: ErrFormIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			o := NewOrchestrator(countingBooker(&calls), tt.decoder, nil, nil)

			outcome, err := o.ConfirmBooking(context.Background(), tt.session(t))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, outcome)
			assert.Zero(t, calls)
		})
	}
}

func TestConfirmBooking_CredentialProviderError(t *testing.T) {
	sess := readySession(t, "CASH")
	boom := errors.New("db down")
	sess.creds = CredentialFunc(func(context.Context) (string, error) { return "", boom })

	calls := 0
	o := NewOrchestrator(countingBooker(&calls), stubDecoder{identity: patient}, nil, nil)

	_, err := o.ConfirmBooking(context.Background(), sess)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, calls)
}

func TestConfirmBooking_CashSuccess(t *testing.T) {
	sess := readySession(t, "cash")

	var got model.BookingRequest
	booker := bookerFunc(func(_ context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
		got = req
		assert.Empty(t, sess.Advisory())
		assert.Equal(t, StateSubmitting, sess.State())
		return &model.BookingConfirmation{AppointmentID: "slot-1", Status: model.AppointmentBooked}, nil
	})

	o := NewOrchestrator(booker, stubDecoder{identity: patient}, nil, nil)
	outcome, err := o.ConfirmBooking(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, model.BookingRequest{SlotID: "slot-1", PatientID: "p-42", PaymentMethod: model.PaymentCash}, got)
	assert.Equal(t, OutcomeConfirmed, outcome.Status)
	assert.Equal(t, "Appointment booked successfully", outcome.Message())

	assert.Equal(t, StateIdle, sess.State())
	_, selected := sess.SelectedSlot()
	assert.False(t, selected)
	assert.Equal(t, FormData{PaymentMethod: model.PaymentCash}, sess.Form().Snapshot())
}

func TestConfirmBooking_VisaAdvisoryOrdering(t *testing.T) {
	sess := readySession(t, "VISA")

	var seen []string
	sess.OnAdvisory(func(text string) { seen = append(seen, text) })

	booker := bookerFunc(func(_ context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
		assert.Equal(t, PendingPaymentAdvisory, sess.Advisory())
		assert.Equal(t, []string{PendingPaymentAdvisory}, seen)
		assert.Equal(t, model.PaymentVisa, req.PaymentMethod)
		return &model.BookingConfirmation{AppointmentID: "slot-1", Status: model.AppointmentBooked, PaymentMethod: model.PaymentVisa}, nil
	})

	o := NewOrchestrator(booker, stubDecoder{identity: patient}, nil, nil)
	outcome, err := o.ConfirmBooking(context.Background(), sess)
	require.NoError(t, err)

	assert.Equal(t, OutcomePendingPayment, outcome.Status)
	assert.Equal(t, "Appointment pending payment", outcome.Message())
	assert.Empty(t, sess.Advisory())
	assert.Equal(t, []string{PendingPaymentAdvisory, ""}, seen)
}

func TestConfirmBooking_RemoteFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "backend message",
			err:     remoteFailure{msg: "Slot already booked"},
			wantMsg: "Slot already booked",
		},
		{
			name:    "wrapped backend message",
			err:     errors.Join(errors.New("post"), remoteFailure{msg: "Doctor unavailable"}),
			wantMsg: "Doctor unavailable",
		},
		{
			name:    "empty backend message",
			err:     remoteFailure{},
			wantMsg: DefaultRemoteMessage,
		},
		{
			name:    "transport error",
			err:     context.DeadlineExceeded,
			wantMsg: DefaultRemoteMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := readySession(t, "VISA")
			sess.Form().SetEmail("anna@example.com")
			before := sess.Form().Snapshot()

			booker := bookerFunc(func(context.Context, model.BookingRequest) (*model.BookingConfirmation, error) {
				return nil, tt.err
			})
			o := NewOrchestrator(booker, stubDecoder{identity: patient}, nil, nil)

			outcome, err := o.ConfirmBooking(context.Background(), sess)
			require.Error(t, err)
			assert.Nil(t, outcome)

			var remote *RemoteError
			require.ErrorAs(t, err, &remote)
			assert.Equal(t, tt.wantMsg, remote.Message)
			assert.ErrorIs(t, err, tt.err)

			assert.Equal(t, before, sess.Form().Snapshot())
			assert.Empty(t, sess.Advisory())
			assert.Equal(t, StateFailed, sess.State())
			slot, selected := sess.SelectedSlot()
			assert.True(t, selected)
			assert.Equal(t, futureSlot.ID, slot.ID)
		})
	}
}

func TestConfirmBooking_RetryAfterFailure(t *testing.T) {
	sess := readySession(t, "CASH")

	fail := true
	booker := bookerFunc(func(context.Context, model.BookingRequest) (*model.BookingConfirmation, error) {
		if fail {
			fail = false
			return nil, remoteFailure{msg: "try again"}
		}
		return &model.BookingConfirmation{Status: model.AppointmentBooked}, nil
	})
	o := NewOrchestrator(booker, stubDecoder{identity: patient}, nil, nil)

	_, err := o.ConfirmBooking(context.Background(), sess)
	require.Error(t, err)

	outcome, err := o.ConfirmBooking(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome.Status)
}

func TestConfirmBooking_RejectsConcurrentAttempts(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})

	var once sync.Once
	booker := bookerFunc(func(context.Context, model.BookingRequest) (*model.BookingConfirmation, error) {
		once.Do(func() { close(started) })
		<-unblock
		return &model.BookingConfirmation{Status: model.AppointmentBooked}, nil
	})
	o := NewOrchestrator(booker, stubDecoder{identity: patient}, nil, nil)

	first := readySession(t, "CASH")
	done := make(chan error, 1)
	go func() {
		_, err := o.ConfirmBooking(context.Background(), first)
		done <- err
	}()
	<-started

	_, err := o.ConfirmBooking(context.Background(), first)
	assert.ErrorIs(t, err, ErrBookingInProgress)
	assert.ErrorIs(t, first.SelectSlot(futureSlot), ErrBookingInProgress)

	second := readySession(t, "CASH")
	_, err = o.ConfirmBooking(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.Equal(t, StateSlotSelected, second.State())

	close(unblock)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, first.State())
}

func TestConfirmBooking_CancelDuringSubmit(t *testing.T) {
	sess := readySession(t, "VISA")

	booker := bookerFunc(func(context.Context, model.BookingRequest) (*model.BookingConfirmation, error) {
		sess.Cancel()
		return nil, remoteFailure{msg: "late"}
	})
	o := NewOrchestrator(booker, stubDecoder{identity: patient}, nil, nil)

	_, err := o.ConfirmBooking(context.Background(), sess)
	require.Error(t, err)

	assert.Equal(t, StateIdle, sess.State())
	assert.Empty(t, sess.Advisory())
	_, selected := sess.SelectedSlot()
	assert.False(t, selected)
}
