package booking

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/paxify_bot/internal/model"
	"go.uber.org/zap"
)

// Booker внешний вызов записи на слот
type Booker interface {
	SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error)
}

// IdentityDecoder восстанавливает пользователя из токена
type IdentityDecoder interface {
	DecodeIdentity(token string) (*model.Identity, error)
}

// OutcomeStatus итог успешной записи
type OutcomeStatus string

const (
	OutcomeConfirmed      OutcomeStatus = "confirmed"
	OutcomePendingPayment OutcomeStatus = "pending_payment"
)

// Outcome результат успешной попытки записи
type Outcome struct {
	Status       OutcomeStatus
	Request      model.BookingRequest
	Confirmation *model.BookingConfirmation
}

// Message текст для пользователя
func (o *Outcome) Message() string {
	if o.Status == OutcomePendingPayment {
		return "Appointment pending payment"
	}
	return "Appointment booked successfully"
}

// Orchestrator проводит попытку записи: предусловия, баннер оплаты, вызов backend
type Orchestrator struct {
	booker  Booker
	decoder IdentityDecoder
	guard   SlotGuard
	logger  *zap.Logger
}

// NewOrchestrator создаёт оркестратор; guard == nil - блокировка в памяти процесса
func NewOrchestrator(booker Booker, decoder IdentityDecoder, guard SlotGuard, logger *zap.Logger) *Orchestrator {
	if guard == nil {
		guard = NewLocalGuard()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		booker:  booker,
		decoder: decoder,
		guard:   guard,
		logger:  logger,
	}
}

// ConfirmBooking записывает пациента на выбранный в сессии слот.
//
// Предусловия проверяются по порядку: выбран слот, есть токен,
// из токена извлекается ID пациента. Для VISA баннер ожидания оплаты
// выставляется до вызова backend и снимается после его завершения.
func (o *Orchestrator) ConfirmBooking(ctx context.Context, sess *Session) (*Outcome, error) {
	slot, ok := sess.SelectedSlot()
	if !ok {
		return nil, ErrNoSlotSelected
	}

	token, err := sess.creds.StoredCredential(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	identity, err := o.decoder.DecodeIdentity(token)
	if err != nil || identity == nil || identity.PatientID == "" {
		o.logger.Warn("Failed to resolve patient from token", zap.Error(err))
		return nil, ErrIdentityUnresolvable
	}

	form := sess.Form().Snapshot()
	if !form.CanSubmit() {
		return nil, ErrFormIncomplete
	}

	method := form.PaymentMethod
	if method == "" {
		method = model.PaymentCash
	}

	req := model.BookingRequest{
		SlotID:        slot.ID,
		PatientID:     identity.PatientID,
		PaymentMethod: method,
	}

	attempt, err := sess.begin()
	if err != nil {
		return nil, err
	}

	release, err := o.guard.Acquire(ctx, req.SlotID)
	if err != nil {
		sess.abort(attempt)
		return nil, err
	}
	defer release()

	if method == model.PaymentVisa {
		sess.showAdvisory(attempt, PendingPaymentAdvisory)
	}

	o.logger.Info("Submitting booking",
		zap.String("slot_id", req.SlotID),
		zap.String("patient_id", req.PatientID),
		zap.String("payment_method", string(method)),
	)

	confirmation, err := o.booker.SubmitBooking(ctx, req)
	if err != nil {
		sess.fail(attempt)
		remote := newRemoteError(err)
		o.logger.Error("Booking failed",
			zap.String("slot_id", req.SlotID),
			zap.String("message", remote.Message),
			zap.Error(err),
		)
		return nil, remote
	}

	sess.succeed(attempt)

	outcome := &Outcome{
		Status:       OutcomeConfirmed,
		Request:      req,
		Confirmation: confirmation,
	}
	if method == model.PaymentVisa {
		outcome.Status = OutcomePendingPayment
	}

	o.logger.Info("Slot booked",
		zap.String("slot_id", req.SlotID),
		zap.String("patient_id", req.PatientID),
		zap.String("status", string(outcome.Status)),
	)

	return outcome, nil
}
