package domain

import (
	"errors"
	"strings"
	"time"
)

const MaxListLimit = 100

var (
	ErrInvalidUUID  = errors.New("invalid uuid")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidEmail = errors.New("invalid email")
	ErrInvalidRole  = errors.New("invalid user role")
)

// User role constants
const (
	RoleVenueOwner = "venue_owner"
	RoleMusician   = "musician"
	RoleAdmin      = "admin"
)

// ValidRoles returns list of valid user roles
func ValidRoles() []string {
	return []string{RoleVenueOwner, RoleMusician, RoleAdmin}
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateUserRequest struct {
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
}

func ValidateUser(req CreateUserRequest) error {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return ErrInvalidEmail
	}
	for _, r := range ValidRoles() {
		if r == req.Role {
			return nil
		}
	}
	return ErrInvalidRole
}
