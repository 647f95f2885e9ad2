package booking

import (
	"errors"
)

// Ошибки предусловий: возвращаются до любого сетевого вызова
var (
	ErrNoSlotSelected       = errors.New("no appointment slot selected")
	ErrNotAuthenticated     = errors.New("you must be logged in to book an appointment")
	ErrIdentityUnresolvable = errors.New("cannot determine patient ID from token")
	ErrFormIncomplete       = errors.New("name and phone are required")
)

// Ошибки выбора слота и параллельных попыток
var (
	ErrSlotUnavailable   = errors.New("slot is booked or already in the past")
	ErrBookingInProgress = errors.New("booking is already in progress")
	ErrSlotBusy          = errors.New("slot is being booked by someone else")
)

// DefaultRemoteMessage текст, если backend не прислал своего
const DefaultRemoteMessage = "Failed to book appointment"

// RemoteError отказ внешнего вызова записи
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// remoteMessenger ошибка, несущая сообщение из ответа backend
type remoteMessenger interface {
	RemoteMessage() string
}

func newRemoteError(err error) *RemoteError {
	msg := DefaultRemoteMessage

	var rm remoteMessenger
	if errors.As(err, &rm) && rm.RemoteMessage() != "" {
		msg = rm.RemoteMessage()
	}

	return &RemoteError{Message: msg, Err: err}
}
