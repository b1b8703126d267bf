package service

import (
	"context"
	"time"

	"booking-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.EventHistory) error
	ListBySubject(ctx context.Context, subjectID string, limit, offset int) ([]domain.EventHistory, error)
}

type AuditPublisher interface {
	Publish(ctx context.Context, entry domain.EventHistory) error
}

// HistoryWriter persists audit entries. Entries are written once and never
// modified afterwards.
type HistoryWriter struct {
	repo          HistoryRepository
	publisher     AuditPublisher
	systemActorID string
	logger        log.FieldLogger
}

// NewHistoryWriter returns a writer. publisher may be nil, in which case
// entries are only stored in the database.
func NewHistoryWriter(repo HistoryRepository, publisher AuditPublisher, systemActorID string, logger log.FieldLogger) *HistoryWriter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &HistoryWriter{
		repo:          repo,
		publisher:     publisher,
		systemActorID: systemActorID,
		logger:        logger,
	}
}

// Record stores one entry. The id, creation time and a missing actor are
// filled in here. A failed publish after a successful insert is logged and
// does not fail the call.
func (w *HistoryWriter) Record(ctx context.Context, entry *domain.EventHistory) error {
	if w == nil || w.repo == nil || entry == nil {
		return nil
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ActorID == "" {
		entry.ActorID = w.systemActorID
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	if err := w.repo.Create(ctx, entry); err != nil {
		return err
	}

	if w.publisher != nil {
		if err := w.publisher.Publish(ctx, *entry); err != nil {
			w.logger.WithError(err).WithFields(log.Fields{
				"history_id":  entry.ID,
				"change_type": entry.ChangeType,
			}).Warn("Failed to publish history entry")
		}
	}

	return nil
}

func (w *HistoryWriter) ListHistory(ctx context.Context, subjectID string, limit, offset int) ([]domain.EventHistory, error) {
	if _, err := uuid.Parse(subjectID); err != nil {
		return nil, domain.ErrInvalidUUID
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > domain.MaxListLimit {
		limit = domain.MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries, err := w.repo.ListBySubject(ctx, subjectID, limit, offset)
	if err != nil {
		w.logger.WithError(err).WithField("subject_id", subjectID).Error("Failed to list history")
		return nil, err
	}
	return entries, nil
}
