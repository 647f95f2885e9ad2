package booking

import (
	"context"
	"sync"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// State состояние одной попытки записи
type State string

const (
	StateIdle           State = "idle"
	StateSlotSelected   State = "slot_selected"
	StateSubmitting     State = "submitting"
	StateConfirmed      State = "confirmed"
	StatePendingPayment State = "pending_payment"
	StateFailed         State = "failed"
)

// PendingPaymentAdvisory показывается пока запись с оплатой VISA не подтверждена
const PendingPaymentAdvisory = "Your booking is pending payment confirmation."

// CredentialProvider источник сохранённого токена пользователя.
// Пустая строка без ошибки означает, что токена нет.
type CredentialProvider interface {
	StoredCredential(ctx context.Context) (string, error)
}

// CredentialFunc адаптер функции к CredentialProvider
type CredentialFunc func(ctx context.Context) (string, error)

func (f CredentialFunc) StoredCredential(ctx context.Context) (string, error) {
	return f(ctx)
}

// Session состояние записи одного пользователя:
// выбранный слот, форма, баннер ожидания оплаты
type Session struct {
	mu         sync.Mutex
	form       *Form
	creds      CredentialProvider
	slot       *model.Slot
	state      State
	advisory   string
	attempt    uint64
	onAdvisory func(string)
}

// NewSession создаёт сессию записи
func NewSession(creds CredentialProvider) *Session {
	return &Session{
		form:  NewForm(),
		creds: creds,
		state: StateIdle,
	}
}

// Form форма записи сессии
func (s *Session) Form() *Form {
	return s.form
}

// OnAdvisory подписка на изменение баннера (установка и сброс)
func (s *Session) OnAdvisory(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAdvisory = fn
}

// SelectSlot выбирает слот. Занятые и прошедшие слоты выбрать нельзя.
func (s *Session) SelectSlot(slot model.Slot) error {
	if !slot.Selectable() {
		return ErrSlotUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return ErrBookingInProgress
	}

	s.slot = &slot
	s.state = StateSlotSelected
	return nil
}

// SelectedSlot выбранный слот
func (s *Session) SelectedSlot() (model.Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slot == nil {
		return model.Slot{}, false
	}
	return *s.slot, true
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Advisory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advisory
}

// Cancel закрытие окна записи: форма очищается, слот снимается.
// Результат попытки, завершившейся позже, на сессию уже не влияет.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.attempt++
	s.slot = nil
	s.state = StateIdle
	notify := s.setAdvisoryLocked("")
	s.mu.Unlock()

	s.form.Reset()
	notify()
}

// begin переводит сессию в Submitting и возвращает номер попытки
func (s *Session) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return 0, ErrBookingInProgress
	}
	if s.slot == nil {
		return 0, ErrNoSlotSelected
	}

	s.attempt++
	s.state = StateSubmitting
	return s.attempt, nil
}

// abort откатывает попытку, не дошедшую до вызова backend
func (s *Session) abort(attempt uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt == attempt && s.state == StateSubmitting {
		s.state = StateSlotSelected
	}
}

// showAdvisory выставляет баннер, если попытка ещё актуальна
func (s *Session) showAdvisory(attempt uint64, text string) {
	s.mu.Lock()
	if s.attempt != attempt {
		s.mu.Unlock()
		return
	}
	notify := s.setAdvisoryLocked(text)
	s.mu.Unlock()

	notify()
}

// succeed завершает попытку успехом: сессия возвращается в Idle
func (s *Session) succeed(attempt uint64) {
	s.mu.Lock()
	current := s.attempt == attempt
	var notify func()
	if current {
		s.slot = nil
		s.state = StateIdle
		notify = s.setAdvisoryLocked("")
	}
	s.mu.Unlock()

	if current {
		s.form.Reset()
		notify()
	}
}

// fail завершает попытку ошибкой: форма и слот остаются для повтора
func (s *Session) fail(attempt uint64) {
	s.mu.Lock()
	current := s.attempt == attempt
	var notify func()
	if current {
		s.state = StateFailed
		notify = s.setAdvisoryLocked("")
	}
	s.mu.Unlock()

	if current {
		notify()
	}
}

// setAdvisoryLocked меняет баннер; подписчик вызывается после снятия блокировки
func (s *Session) setAdvisoryLocked(text string) func() {
	if s.advisory == text {
		return func() {}
	}
	s.advisory = text

	fn := s.onAdvisory
	if fn == nil {
		return func() {}
	}
	return func() { fn(text) }
}
