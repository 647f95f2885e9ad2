package booking

import (
	"strings"
	"sync"

	"github.com/Freeeeeet/paxify_bot/internal/model"
)

// FormData снимок полей формы записи
type FormData struct {
	Name          string
	Phone         string
	Email         string
	PaymentMethod model.PaymentMethod
}

// CanSubmit имя и телефон заполнены
func (d FormData) CanSubmit() bool {
	return d.Name != "" && d.Phone != ""
}

// Form контактные данные пациента и способ оплаты.
// Безопасна для конкурентного использования.
type Form struct {
	mu   sync.RWMutex
	data FormData
}

// NewForm создаёт пустую форму с оплатой наличными
func NewForm() *Form {
	return &Form{data: FormData{PaymentMethod: model.PaymentCash}}
}

func (f *Form) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Name = strings.TrimSpace(name)
}

func (f *Form) SetPhone(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Phone = strings.TrimSpace(phone)
}

func (f *Form) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Email = strings.TrimSpace(email)
}

// SetPaymentMethod принимает способ оплаты в любом регистре.
// Неизвестное значение отклоняется, текущее остаётся без изменений.
func (f *Form) SetPaymentMethod(method string) error {
	m, err := model.ParsePaymentMethod(method)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.PaymentMethod = m
	return nil
}

// CanSubmit вычисляется при каждом вызове
func (f *Form) CanSubmit() bool {
	return f.Snapshot().CanSubmit()
}

// Snapshot копия текущих значений
func (f *Form) Snapshot() FormData {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.data
}

// Reset очищает поля, оплата снова CASH
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = FormData{PaymentMethod: model.PaymentCash}
}
