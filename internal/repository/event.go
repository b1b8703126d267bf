package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) *postgresEventRepository {
	return &postgresEventRepository{db: db}
}

const eventColumns = `id, venue_id, musician_id, title, description, event_date, start_time, ticket_price, total_capacity, status, created_at, updated_at`

func scanEvent(s rowScanner) (*domain.Event, error) {
	var event domain.Event
	var musicianID sql.NullString
	err := s.Scan(
		&event.ID,
		&event.VenueID,
		&musicianID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.StartTime,
		&event.TicketPrice,
		&event.TotalCapacity,
		&event.Status,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if musicianID.Valid {
		event.MusicianID = &musicianID.String
	}
	return &event, nil
}

func (r *postgresEventRepository) Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"title":    req.Title,
		"venue_id": req.VenueID,
	}).Info("Creating new event")

	status := req.Status
	if status == "" {
		status = domain.EventStatusDraft
	}

	query := `INSERT INTO events (venue_id, musician_id, title, description, event_date, start_time, ticket_price, total_capacity, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING ` + eventColumns

	event, err := scanEvent(r.db.QueryRowContext(ctx, query,
		req.VenueID,
		req.MusicianID,
		req.Title,
		req.Description,
		req.EventDate,
		req.StartTime,
		req.TicketPrice,
		req.TotalCapacity,
		status,
	))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"title":    req.Title,
			"venue_id": req.VenueID,
		}).Error("Failed to create event")
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		log.WithError(err).WithField("event_id", id).Error("Failed to get event by ID")
		return nil, err
	}

	return event, nil
}

func (r *postgresEventRepository) Update(ctx context.Context, id string, req domain.UpdateEventRequest) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	setParts := []string{}
	args := []interface{}{}
	argPos := 1

	set := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.VenueID != nil {
		set("venue_id", *req.VenueID)
	}
	if req.MusicianID != nil {
		// An empty musician id unassigns the event.
		if *req.MusicianID == "" {
			set("musician_id", nil)
		} else {
			set("musician_id", *req.MusicianID)
		}
	}
	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.EventDate != nil {
		set("event_date", *req.EventDate)
	}
	if req.StartTime != nil {
		set("start_time", *req.StartTime)
	}
	if req.TicketPrice != nil {
		set("ticket_price", *req.TicketPrice)
	}
	if req.TotalCapacity != nil {
		set("total_capacity", *req.TotalCapacity)
	}
	if req.Status != nil {
		set("status", *req.Status)
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE events
	                      SET %s
	                      WHERE id = $%d
	                      RETURNING %s`,
		strings.Join(setParts, ", "), argPos, eventColumns)

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		log.WithError(err).WithField("event_id", id).Error("Failed to update event")
		return nil, err
	}

	return event, nil
}
