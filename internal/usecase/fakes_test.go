package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"

	"github.com/google/uuid"
)

// memBookingRepo mirrors the database exclusion constraint: check and insert
// happen under one lock, cancelled rows never conflict, ranges are [start, end).
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]entity.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[uuid.UUID]entity.Booking)}
}

func (m *memBookingRepo) Insert(_ context.Context, b *entity.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.bookings {
		if existing.VenueID != b.VenueID || existing.Status == entity.BookingStatusCancelled {
			continue
		}
		if b.StartAt.Before(existing.EndAt) && existing.StartAt.Before(b.EndAt) {
			return repository.ErrBookingOverlap
		}
	}
	m.bookings[b.ID] = *b
	return nil
}

func (m *memBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *memBookingRepo) filter(keep func(entity.Booking) bool) []*entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*entity.Booking
	for _, b := range m.bookings {
		if keep(b) {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

func page(all []*entity.Booking, limit, offset int) []*entity.Booking {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (m *memBookingRepo) FindByRequesterID(_ context.Context, requesterID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return page(m.filter(func(b entity.Booking) bool { return b.RequesterID == requesterID }), limit, offset), nil
}

func (m *memBookingRepo) CountByRequesterID(_ context.Context, requesterID uuid.UUID) (int64, error) {
	return int64(len(m.filter(func(b entity.Booking) bool { return b.RequesterID == requesterID }))), nil
}

func (m *memBookingRepo) FindByVenueID(_ context.Context, venueID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	return page(m.filter(func(b entity.Booking) bool { return b.VenueID == venueID }), limit, offset), nil
}

func (m *memBookingRepo) CountByVenueID(_ context.Context, venueID uuid.UUID) (int64, error) {
	return int64(len(m.filter(func(b entity.Booking) bool { return b.VenueID == venueID }))), nil
}

func (m *memBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status, expected entity.BookingStatus, updatedAt time.Time) (*entity.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok || b.Status != expected {
		return nil, repository.ErrStatusMismatch
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	m.bookings[id] = b
	return &b, nil
}

func (m *memBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok || b.Status != entity.BookingStatusCancelled {
		return repository.ErrNotCancelled
	}
	delete(m.bookings, id)
	return nil
}

func (m *memBookingRepo) status(id uuid.UUID) entity.BookingStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].Status
}

type memVenueRepo struct {
	mu     sync.Mutex
	venues map[uuid.UUID]*entity.Venue
}

func newMemVenueRepo() *memVenueRepo {
	return &memVenueRepo{venues: make(map[uuid.UUID]*entity.Venue)}
}

func (m *memVenueRepo) Create(_ context.Context, v *entity.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.venues[v.ID] = v
	return nil
}

func (m *memVenueRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Venue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.venues[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memVenueRepo) UpdatePricing(_ context.Context, v *entity.Venue) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.venues[v.ID]
	if !ok {
		return repository.ErrNotFound
	}
	existing.VenuePricing = v.VenuePricing
	return nil
}

type memPaymentRepo struct {
	mu        sync.Mutex
	payments  []*entity.Payment
	createErr error
	failErr   error
}

func (m *memPaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	cp := *p
	m.payments = append(m.payments, &cp)
	return nil
}

func (m *memPaymentRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Payment
	for _, p := range m.payments {
		if p.BookingID == bookingID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memPaymentRepo) CompletePending(_ context.Context, bookingID uuid.UUID, t entity.PaymentType) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, p := range m.payments {
		if p.BookingID == bookingID && p.PaymentType == t && p.PaymentStatus == entity.PaymentStatusPending {
			p.PaymentStatus = entity.PaymentStatusCompleted
			n++
		}
	}
	return n, nil
}

func (m *memPaymentRepo) FailPending(_ context.Context, bookingID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	var n int64
	for _, p := range m.payments {
		if p.BookingID == bookingID && p.PaymentStatus == entity.PaymentStatusPending {
			p.PaymentStatus = entity.PaymentStatusFailed
			n++
		}
	}
	return n, nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []entity.Notification
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, *n)
	return nil
}

func (r *recordingNotifier) all() []entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Notification(nil), r.sent...)
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T {
	return &v
}
