package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"booking-service/internal/domain"

	"github.com/sirupsen/logrus/hooks/test"
)

type bookingFixture struct {
	svc     *bookingService
	repo    *fakeBookingRepo
	history *fakeHistoryRepo
	mailer  *fakeMailer
	hook    *test.Hook
}

func newBookingFixture(status string) *bookingFixture {
	logger, hook := test.NewNullLogger()
	repo := &fakeBookingRepo{
		bookings: map[string]domain.Booking{
			testBookingID: {
				ID:          testBookingID,
				EventID:     testEventID,
				MusicianID:  testMusicianID,
				Status:      status,
				ProposedFee: 300,
			},
		},
		details: domain.BookingDetails{
			Musician: domain.Musician{ID: testMusicianID, StageName: "The Blue Notes", Email: "bluenotes@example.com"},
			Event:    jazzNight(),
			Venue:    domain.Venue{ID: testVenueID, Name: "The Cellar", Address: "12 Market St", City: "Portland"},
		},
	}
	history := &fakeHistoryRepo{}
	mailer := &fakeMailer{}

	writer := NewHistoryWriter(history, nil, "system", logger)
	notifier := NewStatusNotifier(repo, mailer, "bookings@example.com")

	return &bookingFixture{
		svc:     NewBookingService(repo, writer, notifier, logger),
		repo:    repo,
		history: history,
		mailer:  mailer,
		hook:    hook,
	}
}

func (f *bookingFixture) update(t *testing.T, req domain.UpdateBookingRequest) *domain.Booking {
	t.Helper()
	booking, err := f.svc.UpdateBooking(context.Background(), ActionContext{ActorID: "venue-owner-1"}, testBookingID, req)
	if err != nil {
		t.Fatalf("UpdateBooking() error = %v", err)
	}
	return booking
}

func TestUpdateBookingConfirmedSendsConfirmation(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusSelected)

	booking := f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusConfirmed)})
	if booking.Status != domain.BookingStatusConfirmed {
		t.Errorf("Status = %q", booking.Status)
	}

	if len(f.mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.mailer.sent))
	}
	msg := f.mailer.sent[0]
	if msg.To != "bluenotes@example.com" || msg.From != "bookings@example.com" {
		t.Errorf("msg addresses = %q -> %q", msg.From, msg.To)
	}
	if !strings.Contains(msg.Subject, "confirmed") || !strings.Contains(msg.HTML, "confirmed your booking") {
		t.Errorf("unexpected confirmation email: %+v", msg)
	}
	if !strings.Contains(msg.HTML, "The Cellar") || !strings.Contains(msg.HTML, "Jazz Night") {
		t.Errorf("email missing venue or event: %s", msg.HTML)
	}

	if len(f.history.entries) != 1 || f.history.entries[0].ChangeType != "booking_status" {
		t.Fatalf("history = %+v, want one booking_status entry", f.history.entries)
	}
	if f.history.entries[0].PreviousValue != "selected" || f.history.entries[0].NewValue != "confirmed" {
		t.Errorf("history values = %+v", f.history.entries[0])
	}
}

func TestUpdateBookingRejectedSendsRejection(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusApplied)

	f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusRejected)})

	if len(f.mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.mailer.sent))
	}
	if !strings.Contains(f.mailer.sent[0].HTML, "not to move forward") {
		t.Errorf("expected rejection template, got %s", f.mailer.sent[0].HTML)
	}
}

func TestUpdateBookingOtherStatusesSendNothing(t *testing.T) {
	for _, status := range []string{
		domain.BookingStatusApplied,
		domain.BookingStatusCommunicating,
		domain.BookingStatusSelected,
		domain.BookingStatusCancelled,
	} {
		t.Run(status, func(t *testing.T) {
			f := newBookingFixture(domain.BookingStatusConfirmed)
			f.update(t, domain.UpdateBookingRequest{Status: strPtr(status)})
			if len(f.mailer.sent) != 0 {
				t.Errorf("sent %d emails for %s, want 0", len(f.mailer.sent), status)
			}
		})
	}
}

func TestUpdateBookingWithoutStatusSendsNothing(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusConfirmed)

	f.update(t, domain.UpdateBookingRequest{
		Message:     strPtr("Can we start at 9?"),
		ProposedFee: floatPtr(350),
	})

	if len(f.mailer.sent) != 0 {
		t.Fatalf("sent %d emails, want 0", len(f.mailer.sent))
	}
	if len(f.history.entries) != 2 {
		t.Fatalf("got %d history entries, want 2", len(f.history.entries))
	}
}

func TestUpdateBookingSameTerminalStatusSendsAgain(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusSelected)

	f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusConfirmed)})
	f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusConfirmed)})

	if len(f.mailer.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(f.mailer.sent))
	}
	if len(f.history.entries) != 1 {
		t.Fatalf("got %d history entries, want 1", len(f.history.entries))
	}
}

func TestUpdateBookingMailFailureIsSwallowed(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusSelected)
	f.mailer.err = errors.New("smtp: 535 authentication failed")

	booking := f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusConfirmed)})
	if booking.Status != domain.BookingStatusConfirmed {
		t.Errorf("Status = %q", booking.Status)
	}
	if last := f.hook.LastEntry(); last == nil || last.Message != "Failed to send booking email" {
		t.Errorf("expected send failure to be logged, last entry = %+v", last)
	}
}

func TestUpdateBookingDetailLookupFailureIsSwallowed(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusSelected)
	f.repo.detailErr = errors.New("connection refused")

	f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusRejected)})
	if len(f.mailer.sent) != 0 {
		t.Fatalf("sent %d emails, want 0", len(f.mailer.sent))
	}
}

func TestUpdateBookingHistoryFailureStillNotifies(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusSelected)
	f.history.failAll = true

	booking := f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusConfirmed)})
	if booking == nil {
		t.Fatal("expected saved booking")
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.mailer.sent))
	}
}

func TestUpdateBookingAllowsAnyTransition(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusConfirmed)

	booking := f.update(t, domain.UpdateBookingRequest{Status: strPtr(domain.BookingStatusApplied)})
	if booking.Status != domain.BookingStatusApplied {
		t.Fatalf("Status = %q, want applied", booking.Status)
	}
}

func TestUpdateBookingRejectsUnknownStatus(t *testing.T) {
	f := newBookingFixture(domain.BookingStatusApplied)

	_, err := f.svc.UpdateBooking(context.Background(), ActionContext{}, testBookingID, domain.UpdateBookingRequest{Status: strPtr("maybe")})
	if !errors.Is(err, domain.ErrInvalidBookingStatus) {
		t.Fatalf("error = %v, want ErrInvalidBookingStatus", err)
	}
}

func TestComposeFormatsEventDate(t *testing.T) {
	n := NewStatusNotifier(nil, nil, "from@example.com")
	details := &domain.BookingDetails{
		Musician: domain.Musician{StageName: "Solo", Email: "solo@example.com"},
		Event:    domain.Event{Title: "Open Mic", EventDate: time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)},
		Venue:    domain.Venue{Name: "Corner Bar"},
	}

	msg, ok, err := n.Compose(details, domain.BookingStatusConfirmed)
	if err != nil || !ok {
		t.Fatalf("Compose() = %v, %v", ok, err)
	}
	if !strings.Contains(msg.HTML, "Saturday, July 12, 2025") {
		t.Errorf("date not rendered: %s", msg.HTML)
	}

	if _, ok, _ := n.Compose(details, domain.BookingStatusSelected); ok {
		t.Error("Compose() for selected should produce no email")
	}
}
