package domain

import (
	"errors"
	"time"
)

var (
	ErrMusicianNotFound    = errors.New("musician not found")
	ErrInvalidMusicianName = errors.New("invalid musician name")
)

type Musician struct {
	ID         string    `json:"id"`
	UserID     *string   `json:"user_id,omitempty"`
	StageName  string    `json:"stage_name"`
	Email      string    `json:"email"`
	Genre      string    `json:"genre,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	HourlyRate float64   `json:"hourly_rate"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateMusicianRequest struct {
	UserID     *string `json:"user_id,omitempty" yaml:"-"`
	StageName  string  `json:"stage_name" yaml:"stage_name"`
	Email      string  `json:"email" yaml:"email"`
	Genre      string  `json:"genre" yaml:"genre"`
	Bio        string  `json:"bio" yaml:"bio"`
	HourlyRate float64 `json:"hourly_rate" yaml:"hourly_rate"`
}

func ValidateMusician(req CreateMusicianRequest) error {
	if req.StageName == "" {
		return ErrInvalidMusicianName
	}
	return nil
}
