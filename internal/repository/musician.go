package repository

import (
	"context"
	"database/sql"
	"fmt"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

type postgresMusicianRepository struct {
	db *sql.DB
}

func NewPostgresMusicianRepository(db *sql.DB) *postgresMusicianRepository {
	return &postgresMusicianRepository{db: db}
}

const musicianColumns = `id, user_id, stage_name, email, genre, bio, hourly_rate, created_at, updated_at`

func scanMusician(s rowScanner) (*domain.Musician, error) {
	var musician domain.Musician
	var userID sql.NullString
	err := s.Scan(
		&musician.ID,
		&userID,
		&musician.StageName,
		&musician.Email,
		&musician.Genre,
		&musician.Bio,
		&musician.HourlyRate,
		&musician.CreatedAt,
		&musician.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		musician.UserID = &userID.String
	}
	return &musician, nil
}

func (r *postgresMusicianRepository) Create(ctx context.Context, req domain.CreateMusicianRequest) (*domain.Musician, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"stage_name": req.StageName,
		"email":      req.Email,
	}).Info("Creating new musician")

	query := `INSERT INTO musicians (user_id, stage_name, email, genre, bio, hourly_rate)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + musicianColumns

	musician, err := scanMusician(r.db.QueryRowContext(ctx, query,
		req.UserID,
		req.StageName,
		req.Email,
		req.Genre,
		req.Bio,
		req.HourlyRate,
	))
	if err != nil {
		log.WithError(err).WithField("stage_name", req.StageName).Error("Failed to create musician")
		return nil, fmt.Errorf("failed to create musician: %w", err)
	}

	return musician, nil
}

func (r *postgresMusicianRepository) GetByID(ctx context.Context, id string) (*domain.Musician, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + musicianColumns + ` FROM musicians WHERE id = $1`

	musician, err := scanMusician(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrMusicianNotFound
	}
	if err != nil {
		log.WithError(err).WithField("musician_id", id).Error("Failed to get musician by ID")
		return nil, err
	}

	return musician, nil
}
