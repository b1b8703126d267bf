package repository

import (
	"context"
	"database/sql"
	"fmt"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) *postgresVenueRepository {
	return &postgresVenueRepository{db: db}
}

const venueColumns = `id, owner_id, name, address, city, capacity, description, created_at, updated_at`

func scanVenue(s rowScanner) (*domain.Venue, error) {
	var venue domain.Venue
	err := s.Scan(
		&venue.ID,
		&venue.OwnerID,
		&venue.Name,
		&venue.Address,
		&venue.City,
		&venue.Capacity,
		&venue.Description,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *postgresVenueRepository) Create(ctx context.Context, req domain.CreateVenueRequest) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"name":     req.Name,
		"owner_id": req.OwnerID,
	}).Info("Creating new venue")

	query := `INSERT INTO venues (owner_id, name, address, city, capacity, description)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + venueColumns

	venue, err := scanVenue(r.db.QueryRowContext(ctx, query,
		req.OwnerID,
		req.Name,
		req.Address,
		req.City,
		req.Capacity,
		req.Description,
	))
	if err != nil {
		log.WithError(err).WithField("name", req.Name).Error("Failed to create venue")
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	return venue, nil
}

func (r *postgresVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`

	venue, err := scanVenue(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrVenueNotFound
	}
	if err != nil {
		log.WithError(err).WithField("venue_id", id).Error("Failed to get venue by ID")
		return nil, err
	}

	return venue, nil
}
