package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
)

const queryTimeout = 5 * time.Second

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *postgresUserRepository {
	return &postgresUserRepository{db: db}
}

const userColumns = `id, email, name, role, created_at, updated_at`

func scanUser(s rowScanner) (*domain.User, error) {
	var user domain.User
	err := s.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	log.WithFields(log.Fields{
		"email": req.Email,
		"role":  req.Role,
	}).Info("Creating new user in database")

	query := `INSERT INTO users (email, name, role)
	          VALUES ($1, $2, $3)
	          RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query, req.Email, req.Name, req.Role))
	if err != nil {
		log.WithError(err).WithField("email", req.Email).Error("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrUserNotFound
		}
		log.WithError(err).WithField("user_id", id).Error("Failed to get user by ID")
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) ListByRole(ctx context.Context, role string, limit int) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + `
	          FROM users
	          WHERE role = $1
	          ORDER BY created_at ASC
	          LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, role, limit)
	if err != nil {
		log.WithError(err).WithField("role", role).Error("Failed to list users by role")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			log.WithError(err).Error("Failed to scan user row")
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over user rows: %w", err)
	}

	return users, nil
}
