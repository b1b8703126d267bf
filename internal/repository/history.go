package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

// postgresHistoryRepository only inserts and reads; history rows are never
// updated or deleted.
type postgresHistoryRepository struct {
	db *sql.DB
}

func NewPostgresHistoryRepository(db *sql.DB) *postgresHistoryRepository {
	return &postgresHistoryRepository{db: db}
}

func (r *postgresHistoryRepository) Create(ctx context.Context, entry *domain.EventHistory) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	contextJSON, err := json.Marshal(entry.Context)
	if err != nil {
		return fmt.Errorf("failed to marshal history context: %w", err)
	}
	if entry.Context == nil {
		contextJSON = []byte("{}")
	}

	query := `INSERT INTO event_history (
	              id, subject_id, actor_id, change_type,
	              previous_value, new_value, description, context
	          ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.SubjectID,
		entry.ActorID,
		entry.ChangeType,
		entry.PreviousValue,
		entry.NewValue,
		entry.Description,
		contextJSON,
	).Scan(&entry.CreatedAt)

	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"subject_id":  entry.SubjectID,
			"change_type": entry.ChangeType,
		}).Error("Failed to insert history entry")
		return fmt.Errorf("failed to create history entry: %w", err)
	}

	return nil
}

func (r *postgresHistoryRepository) ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]domain.EventHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query := `SELECT id, subject_id, actor_id, change_type, previous_value, new_value, description, context, created_at
	          FROM event_history
	          WHERE subject_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, subjectID, limit, offset)
	if err != nil {
		log.WithError(err).WithField("subject_id", subjectID).Error("Failed to list history")
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []domain.EventHistory{}
	for rows.Next() {
		var entry domain.EventHistory
		var contextJSON []byte
		err := rows.Scan(
			&entry.ID,
			&entry.SubjectID,
			&entry.ActorID,
			&entry.ChangeType,
			&entry.PreviousValue,
			&entry.NewValue,
			&entry.Description,
			&contextJSON,
			&entry.CreatedAt,
		)
		if err != nil {
			log.WithError(err).Error("Failed to scan history row")
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if len(contextJSON) > 0 {
			if err := json.Unmarshal(contextJSON, &entry.Context); err != nil {
				return nil, fmt.Errorf("failed to decode history context: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over history rows: %w", err)
	}

	return entries, nil
}
