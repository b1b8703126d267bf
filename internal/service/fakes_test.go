package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"booking-service/internal/domain"
)

type fakeEventRepo struct {
	events map[string]domain.Event
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: map[string]domain.Event{}}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, id string, req domain.UpdateEventRequest) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	if req.VenueID != nil {
		e.VenueID = *req.VenueID
	}
	if req.MusicianID != nil {
		if *req.MusicianID == "" {
			e.MusicianID = nil
		} else {
			m := *req.MusicianID
			e.MusicianID = &m
		}
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.EventDate != nil {
		d, _ := time.Parse(domain.EventDateLayout, *req.EventDate)
		e.EventDate = d
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.TicketPrice != nil {
		e.TicketPrice = *req.TicketPrice
	}
	if req.TotalCapacity != nil {
		e.TotalCapacity = *req.TotalCapacity
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	e.UpdatedAt = time.Now().UTC()
	r.events[id] = e
	return &e, nil
}

type fakeBookingRepo struct {
	bookings  map[string]domain.Booking
	details   domain.BookingDetails
	detailErr error
}

func (r *fakeBookingRepo) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	return nil, errors.New("not implemented")
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *fakeBookingRepo) GetDetails(ctx context.Context, id string) (*domain.BookingDetails, error) {
	if r.detailErr != nil {
		return nil, r.detailErr
	}
	d := r.details
	d.Booking = r.bookings[id]
	return &d, nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, id string, req domain.UpdateBookingRequest) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if req.Status != nil {
		b.Status = *req.Status
	}
	if req.Message != nil {
		b.Message = *req.Message
	}
	if req.ProposedFee != nil {
		b.ProposedFee = *req.ProposedFee
	}
	r.bookings[id] = b
	return &b, nil
}

// fakeHistoryRepo fails the change types listed in failOn, or every write
// when failAll is set.
type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []domain.EventHistory
	failOn  map[string]bool
	failAll bool
}

func (r *fakeHistoryRepo) Create(ctx context.Context, entry *domain.EventHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll || r.failOn[entry.ChangeType] {
		return errors.New("history insert failed")
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]domain.EventHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.EventHistory
	for _, e := range r.entries {
		if e.SubjectID == subjectID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeMailer struct {
	sent []domain.EmailMessage
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakePublisher struct {
	published []domain.EventHistory
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, entry domain.EventHistory) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, entry)
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
