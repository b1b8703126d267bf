package domain

import (
	"errors"
	"time"
)

const (
	maxEventTitleLength = 200
	EventDateLayout     = "2006-01-02"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrInvalidEventTitle  = errors.New("invalid event title")
	ErrInvalidTicketPrice = errors.New("invalid ticket price")
	ErrInvalidEventStatus = errors.New("invalid event status")
	ErrInvalidEventDate   = errors.New("invalid event date")
)

// Event status constants
const (
	EventStatusDraft     = "draft"
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

func ValidEventStatuses() []string {
	return []string{EventStatusDraft, EventStatusPublished, EventStatusCancelled, EventStatusCompleted}
}

type Event struct {
	ID            string    `json:"id"`
	VenueID       string    `json:"venue_id"`
	MusicianID    *string   `json:"musician_id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	EventDate     time.Time `json:"event_date"`
	StartTime     string    `json:"start_time,omitempty"`
	TicketPrice   float64   `json:"ticket_price"`
	TotalCapacity int       `json:"total_capacity"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Snapshot returns the auditable fields of the event keyed by their
// update parameter names.
func (e *Event) Snapshot() map[string]string {
	return map[string]string{
		"venue_id":       e.VenueID,
		"musician_id":    FormatValue(e.MusicianID),
		"title":          e.Title,
		"description":    e.Description,
		"event_date":     e.EventDate.Format(EventDateLayout),
		"start_time":     e.StartTime,
		"ticket_price":   FormatValue(e.TicketPrice),
		"total_capacity": FormatValue(e.TotalCapacity),
		"status":         e.Status,
	}
}

type CreateEventRequest struct {
	VenueID       string  `json:"venue_id" yaml:"-"`
	MusicianID    *string `json:"musician_id,omitempty" yaml:"-"`
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description" yaml:"description"`
	EventDate     string  `json:"event_date" yaml:"event_date"`
	StartTime     string  `json:"start_time" yaml:"start_time"`
	TicketPrice   float64 `json:"ticket_price" yaml:"ticket_price"`
	TotalCapacity int     `json:"total_capacity" yaml:"total_capacity"`
	Status        string  `json:"status" yaml:"status"`
}

type UpdateEventRequest struct {
	VenueID       *string  `json:"venue_id,omitempty"`
	MusicianID    *string  `json:"musician_id,omitempty"`
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	EventDate     *string  `json:"event_date,omitempty"`
	StartTime     *string  `json:"start_time,omitempty"`
	TicketPrice   *float64 `json:"ticket_price,omitempty"`
	TotalCapacity *int     `json:"total_capacity,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// Fields lists the parameter names present in the request.
func (r UpdateEventRequest) Fields() []string {
	var fields []string
	if r.VenueID != nil {
		fields = append(fields, "venue_id")
	}
	if r.MusicianID != nil {
		fields = append(fields, "musician_id")
	}
	if r.Title != nil {
		fields = append(fields, "title")
	}
	if r.Description != nil {
		fields = append(fields, "description")
	}
	if r.EventDate != nil {
		fields = append(fields, "event_date")
	}
	if r.StartTime != nil {
		fields = append(fields, "start_time")
	}
	if r.TicketPrice != nil {
		fields = append(fields, "ticket_price")
	}
	if r.TotalCapacity != nil {
		fields = append(fields, "total_capacity")
	}
	if r.Status != nil {
		fields = append(fields, "status")
	}
	return fields
}

func ValidateEventTitle(title string) error {
	if title == "" || len(title) > maxEventTitleLength {
		return ErrInvalidEventTitle
	}
	return nil
}

func ValidateTicketPrice(price float64) error {
	if price < 0 {
		return ErrInvalidTicketPrice
	}
	return nil
}

func ValidateEventDate(date string) error {
	if _, err := time.Parse(EventDateLayout, date); err != nil {
		return ErrInvalidEventDate
	}
	return nil
}

func ValidateEventStatus(status string) error {
	for _, s := range ValidEventStatuses() {
		if s == status {
			return nil
		}
	}
	return ErrInvalidEventStatus
}
