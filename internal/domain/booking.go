package domain

import (
	"errors"
	"time"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBookingStatus = errors.New("invalid booking status")
	ErrInvalidProposedFee   = errors.New("invalid proposed fee")
)

// Booking status constants. Any status may follow any other; only the
// value set is checked.
const (
	BookingStatusApplied       = "applied"
	BookingStatusCommunicating = "communicating"
	BookingStatusSelected      = "selected"
	BookingStatusConfirmed     = "confirmed"
	BookingStatusRejected      = "rejected"
	BookingStatusCancelled     = "cancelled"
)

func ValidBookingStatuses() []string {
	return []string{
		BookingStatusApplied,
		BookingStatusCommunicating,
		BookingStatusSelected,
		BookingStatusConfirmed,
		BookingStatusRejected,
		BookingStatusCancelled,
	}
}

func ValidateBookingStatus(status string) error {
	for _, s := range ValidBookingStatuses() {
		if s == status {
			return nil
		}
	}
	return ErrInvalidBookingStatus
}

// NotifiesMusician reports whether moving a booking into status should
// trigger an email to its musician.
func NotifiesMusician(status string) bool {
	return status == BookingStatusConfirmed || status == BookingStatusRejected
}

type Booking struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	MusicianID  string    `json:"musician_id"`
	Status      string    `json:"status"`
	Message     string    `json:"message,omitempty"`
	ProposedFee float64   `json:"proposed_fee"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Booking) Snapshot() map[string]string {
	return map[string]string{
		"status":       b.Status,
		"message":      b.Message,
		"proposed_fee": FormatValue(b.ProposedFee),
	}
}

// BookingDetails is a booking with its musician, event and venue expanded.
type BookingDetails struct {
	Booking  Booking  `json:"booking"`
	Musician Musician `json:"musician"`
	Event    Event    `json:"event"`
	Venue    Venue    `json:"venue"`
}

type CreateBookingRequest struct {
	EventID     string  `json:"event_id" yaml:"-"`
	MusicianID  string  `json:"musician_id" yaml:"-"`
	Status      string  `json:"status" yaml:"status"`
	Message     string  `json:"message" yaml:"message"`
	ProposedFee float64 `json:"proposed_fee" yaml:"proposed_fee"`
}

type UpdateBookingRequest struct {
	Status      *string  `json:"status,omitempty"`
	Message     *string  `json:"message,omitempty"`
	ProposedFee *float64 `json:"proposed_fee,omitempty"`
}

func (r UpdateBookingRequest) Fields() []string {
	var fields []string
	if r.Status != nil {
		fields = append(fields, "status")
	}
	if r.Message != nil {
		fields = append(fields, "message")
	}
	if r.ProposedFee != nil {
		fields = append(fields, "proposed_fee")
	}
	return fields
}

func ValidateProposedFee(fee float64) error {
	if fee < 0 {
		return ErrInvalidProposedFee
	}
	return nil
}
