package service

import (
	"context"

	"booking-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type EventRepository interface {
	Create(ctx context.Context, req domain.CreateEventRequest) (*domain.Event, error)
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	Update(ctx context.Context, id string, req domain.UpdateEventRequest) (*domain.Event, error)
}

type eventService struct {
	eventRepo EventRepository
	history   historyRecorder
	logger    log.FieldLogger
}

func NewEventService(eventRepo EventRepository, history *HistoryWriter, logger log.FieldLogger) *eventService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &eventService{
		eventRepo: eventRepo,
		history:   history,
		logger:    logger,
	}
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidUUID
	}
	return s.eventRepo.GetByID(ctx, id)
}

func validateEventUpdate(req domain.UpdateEventRequest) error {
	if req.VenueID != nil {
		if _, err := uuid.Parse(*req.VenueID); err != nil {
			return domain.ErrInvalidUUID
		}
	}
	if req.MusicianID != nil && *req.MusicianID != "" {
		if _, err := uuid.Parse(*req.MusicianID); err != nil {
			return domain.ErrInvalidUUID
		}
	}
	if req.Title != nil {
		if err := domain.ValidateEventTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.EventDate != nil {
		if err := domain.ValidateEventDate(*req.EventDate); err != nil {
			return err
		}
	}
	if req.TicketPrice != nil {
		if err := domain.ValidateTicketPrice(*req.TicketPrice); err != nil {
			return err
		}
	}
	if req.TotalCapacity != nil && *req.TotalCapacity < 0 {
		return domain.ErrInvalidCapacity
	}
	if req.Status != nil {
		if err := domain.ValidateEventStatus(*req.Status); err != nil {
			return err
		}
	}
	return nil
}

// UpdateEvent saves the requested changes and writes one history entry per
// field whose value actually changed. History failures never fail the
// update.
func (s *eventService) UpdateEvent(ctx context.Context, ac ActionContext, id string, req domain.UpdateEventRequest) (*domain.Event, error) {
	logger := ac.logger(s.logger).WithField("event_id", id)

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidUUID
	}
	if err := validateEventUpdate(req); err != nil {
		return nil, err
	}

	current, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := current.Snapshot()

	event, err := s.eventRepo.Update(ctx, id, req)
	if err != nil {
		logger.WithError(err).Error("Failed to update event")
		return nil, err
	}

	changes := DiffFields(before, event.Snapshot(), req.Fields())
	if len(changes) == 0 {
		return event, nil
	}

	meta := map[string]interface{}{
		"event_id": event.ID,
		"venue_id": event.VenueID,
	}
	if event.MusicianID != nil {
		meta["musician_id"] = *event.MusicianID
	}

	written := recordChanges(ctx, s.history, logger, ac.ActorID, domain.EntityEvent, event.ID, changes, meta)
	logger.WithFields(log.Fields{
		"changed":  len(changes),
		"recorded": written,
	}).Info("Event updated")

	return event, nil
}
