package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type postgresBookingRepository struct {
	db *sql.DB
}

func NewPostgresBookingRepository(db *sql.DB) *postgresBookingRepository {
	return &postgresBookingRepository{db: db}
}

const bookingColumns = `id, event_id, musician_id, status, message, proposed_fee, created_at, updated_at`

func scanBooking(s rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := s.Scan(
		&booking.ID,
		&booking.EventID,
		&booking.MusicianID,
		&booking.Status,
		&booking.Message,
		&booking.ProposedFee,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *postgresBookingRepository) Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"event_id":    req.EventID,
		"musician_id": req.MusicianID,
	}).Info("Creating new booking")

	status := req.Status
	if status == "" {
		status = domain.BookingStatusApplied
	}

	query := `INSERT INTO bookings (event_id, musician_id, status, message, proposed_fee)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query,
		req.EventID,
		req.MusicianID,
		status,
		req.Message,
		req.ProposedFee,
	))
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"event_id":    req.EventID,
			"musician_id": req.MusicianID,
		}).Error("Failed to create booking")
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

func (r *postgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		log.WithError(err).WithField("booking_id", id).Error("Failed to get booking by ID")
		return nil, err
	}

	return booking, nil
}

// GetDetails loads a booking together with its musician, event and venue.
func (r *postgresBookingRepository) GetDetails(ctx context.Context, id string) (*domain.BookingDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT
	            b.id, b.event_id, b.musician_id, b.status, b.message, b.proposed_fee, b.created_at, b.updated_at,
	            m.id, m.user_id, m.stage_name, m.email, m.genre, m.bio, m.hourly_rate, m.created_at, m.updated_at,
	            e.id, e.venue_id, e.musician_id, e.title, e.description, e.event_date, e.start_time,
	            e.ticket_price, e.total_capacity, e.status, e.created_at, e.updated_at,
	            v.id, v.owner_id, v.name, v.address, v.city, v.capacity, v.description, v.created_at, v.updated_at
	          FROM bookings b
	          JOIN musicians m ON m.id = b.musician_id
	          JOIN events e ON e.id = b.event_id
	          JOIN venues v ON v.id = e.venue_id
	          WHERE b.id = $1`

	var d domain.BookingDetails
	var musicianUserID, eventMusicianID sql.NullString

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.Booking.ID,
		&d.Booking.EventID,
		&d.Booking.MusicianID,
		&d.Booking.Status,
		&d.Booking.Message,
		&d.Booking.ProposedFee,
		&d.Booking.CreatedAt,
		&d.Booking.UpdatedAt,
		&d.Musician.ID,
		&musicianUserID,
		&d.Musician.StageName,
		&d.Musician.Email,
		&d.Musician.Genre,
		&d.Musician.Bio,
		&d.Musician.HourlyRate,
		&d.Musician.CreatedAt,
		&d.Musician.UpdatedAt,
		&d.Event.ID,
		&d.Event.VenueID,
		&eventMusicianID,
		&d.Event.Title,
		&d.Event.Description,
		&d.Event.EventDate,
		&d.Event.StartTime,
		&d.Event.TicketPrice,
		&d.Event.TotalCapacity,
		&d.Event.Status,
		&d.Event.CreatedAt,
		&d.Event.UpdatedAt,
		&d.Venue.ID,
		&d.Venue.OwnerID,
		&d.Venue.Name,
		&d.Venue.Address,
		&d.Venue.City,
		&d.Venue.Capacity,
		&d.Venue.Description,
		&d.Venue.CreatedAt,
		&d.Venue.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		log.WithError(err).WithField("booking_id", id).Error("Failed to get booking details")
		return nil, err
	}

	if musicianUserID.Valid {
		d.Musician.UserID = &musicianUserID.String
	}
	if eventMusicianID.Valid {
		d.Event.MusicianID = &eventMusicianID.String
	}

	return &d, nil
}

func (r *postgresBookingRepository) Update(ctx context.Context, id string, req domain.UpdateBookingRequest) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	setParts := []string{}
	args := []interface{}{}
	argPos := 1

	if req.Status != nil {
		setParts = append(setParts, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.Message != nil {
		setParts = append(setParts, fmt.Sprintf("message = $%d", argPos))
		args = append(args, *req.Message)
		argPos++
	}
	if req.ProposedFee != nil {
		setParts = append(setParts, fmt.Sprintf("proposed_fee = $%d", argPos))
		args = append(args, *req.ProposedFee)
		argPos++
	}

	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	setParts = append(setParts, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE bookings
	                      SET %s
	                      WHERE id = $%d
	                      RETURNING %s`,
		strings.Join(setParts, ", "), argPos, bookingColumns)

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		log.WithError(err).WithField("booking_id", id).Error("Failed to update booking")
		return nil, err
	}

	return booking, nil
}
