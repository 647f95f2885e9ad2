package service

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/paxify_bot/internal/booking"
	"github.com/Freeeeeet/paxify_bot/internal/model"
	"github.com/Freeeeeet/paxify_bot/internal/paxify"
)

type memStore struct {
	mu       sync.Mutex
	sessions map[int64]*model.PatientSession
	now      func() time.Time
}

func newMemStore(now func() time.Time) *memStore {
	return &memStore{sessions: make(map[int64]*model.PatientSession), now: now}
}

func (m *memStore) Save(_ context.Context, s *model.PatientSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.TelegramID] = &cp
	return nil
}

func (m *memStore) GetByTelegramID(_ context.Context, id int64) (*model.PatientSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memStore) CredentialFor(id int64) booking.CredentialProvider {
	return booking.CredentialFunc(func(ctx context.Context) (string, error) {
		s, _ := m.GetByTelegramID(ctx, id)
		if s == nil || s.Expired(m.now()) {
			return "", nil
		}
		return s.Token, nil
	})
}

// fakeAPI запоминает токен из контекста последнего вызова
type fakeAPI struct {
	mu        sync.Mutex
	lastToken string

	token       string
	loginErr    error
	slots       []model.RawSlot
	bookErr     error
	booked      []model.BookingRequest
	appts       []model.RawSlot
	apptsFor    string
	doctors     []model.Doctor
	profile     *model.DoctorProfile
	reviews     []model.Review
	reviewCalls int
}

func (f *fakeAPI) seen(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastToken = paxify.TokenFrom(ctx)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeAPI) FetchDoctorSlots(ctx context.Context, doctorID string) ([]model.RawSlot, error) {
	f.seen(ctx)
	return f.slots, nil
}

func (f *fakeAPI) SubmitBooking(ctx context.Context, req model.BookingRequest) (*model.BookingConfirmation, error) {
	f.seen(ctx)
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	f.mu.Lock()
	f.booked = append(f.booked, req)
	f.mu.Unlock()
	return &model.BookingConfirmation{AppointmentID: model.ExternalID(req.SlotID), Status: model.AppointmentBooked}, nil
}

func (f *fakeAPI) PatientAppointments(ctx context.Context, patientID string) ([]model.RawSlot, error) {
	f.seen(ctx)
	f.apptsFor = patientID
	return f.appts, nil
}

func (f *fakeAPI) PublicDoctors(ctx context.Context) ([]model.Doctor, error) {
	return f.doctors, nil
}

func (f *fakeAPI) DoctorProfile(ctx context.Context, doctorID string) (*model.DoctorProfile, error) {
	if f.profile == nil {
		return &model.DoctorProfile{}, nil
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeAPI) DoctorReviews(ctx context.Context, doctorID string) ([]model.Review, error) {
	return f.reviews, nil
}

func (f *fakeAPI) SubmitReview(ctx context.Context, doctorID string, rating int, comment string) error {
	f.seen(ctx)
	f.reviewCalls++
	return nil
}
