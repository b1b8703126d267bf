package domain

import (
	"errors"
	"time"
)

const maxVenueNameLength = 200

var (
	ErrVenueNotFound    = errors.New("venue not found")
	ErrInvalidVenueName = errors.New("invalid venue name")
	ErrInvalidCapacity  = errors.New("invalid capacity")
)

type Venue struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Capacity    int       `json:"capacity"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateVenueRequest struct {
	OwnerID     string `json:"owner_id" yaml:"-"`
	Name        string `json:"name" yaml:"name"`
	Address     string `json:"address" yaml:"address"`
	City        string `json:"city" yaml:"city"`
	Capacity    int    `json:"capacity" yaml:"capacity"`
	Description string `json:"description" yaml:"description"`
}

func ValidateVenue(req CreateVenueRequest) error {
	if req.Name == "" || len(req.Name) > maxVenueNameLength {
		return ErrInvalidVenueName
	}
	if req.Capacity < 0 {
		return ErrInvalidCapacity
	}
	return nil
}
