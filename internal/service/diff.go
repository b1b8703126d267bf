package service

import (
	"context"

	"booking-service/internal/domain"

	log "github.com/sirupsen/logrus"
)

// systemFields are never diffed even when a caller sends them.
var systemFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

type historyRecorder interface {
	Record(ctx context.Context, entry *domain.EventHistory) error
}

// DiffFields compares before and after for each field in fields and returns
// the ones whose values differ. Missing keys compare as "".
func DiffFields(before, after map[string]string, fields []string) []domain.FieldChange {
	var changes []domain.FieldChange
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if systemFields[field] || seen[field] {
			continue
		}
		seen[field] = true

		prev, next := before[field], after[field]
		if prev == next {
			continue
		}
		changes = append(changes, domain.FieldChange{Field: field, Previous: prev, New: next})
	}
	return changes
}

// recordChanges writes one history entry per change, in order. A failed
// write is logged and the remaining changes are still attempted. It returns
// the number of entries written.
func recordChanges(ctx context.Context, rec historyRecorder, logger log.FieldLogger, actorID, entity, subjectID string, changes []domain.FieldChange, meta map[string]interface{}) int {
	written := 0
	for _, change := range changes {
		entry := &domain.EventHistory{
			SubjectID:     subjectID,
			ActorID:       actorID,
			ChangeType:    domain.ChangeType(entity, change.Field),
			PreviousValue: change.Previous,
			NewValue:      change.New,
			Description:   domain.DescribeChange(entity, change),
			Context:       meta,
		}

		if err := rec.Record(ctx, entry); err != nil {
			logger.WithError(err).WithFields(log.Fields{
				"subject_id":  subjectID,
				"change_type": entry.ChangeType,
			}).Error("Failed to write history entry")
			continue
		}
		written++
	}
	return written
}
