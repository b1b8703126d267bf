package service

import (
	"context"

	"booking-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type BookingRepository interface {
	Create(ctx context.Context, req domain.CreateBookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetDetails(ctx context.Context, id string) (*domain.BookingDetails, error)
	Update(ctx context.Context, id string, req domain.UpdateBookingRequest) (*domain.Booking, error)
}

type statusNotifier interface {
	NotifyStatusChange(ctx context.Context, logger log.FieldLogger, bookingID, status string)
}

type bookingService struct {
	bookingRepo BookingRepository
	history     historyRecorder
	notifier    statusNotifier
	logger      log.FieldLogger
}

func NewBookingService(bookingRepo BookingRepository, history *HistoryWriter, notifier *StatusNotifier, logger log.FieldLogger) *bookingService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &bookingService{
		bookingRepo: bookingRepo,
		history:     history,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.BookingDetails, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidUUID
	}
	return s.bookingRepo.GetDetails(ctx, id)
}

func validateBookingUpdate(req domain.UpdateBookingRequest) error {
	if req.Status != nil {
		if err := domain.ValidateBookingStatus(*req.Status); err != nil {
			return err
		}
	}
	if req.ProposedFee != nil {
		if err := domain.ValidateProposedFee(*req.ProposedFee); err != nil {
			return err
		}
	}
	return nil
}

// UpdateBooking saves the requested changes, records field history and,
// when status was part of the request, lets the notifier decide whether to
// email the musician. Only the save itself can fail the call.
func (s *bookingService) UpdateBooking(ctx context.Context, ac ActionContext, id string, req domain.UpdateBookingRequest) (*domain.Booking, error) {
	logger := ac.logger(s.logger).WithField("booking_id", id)

	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrInvalidUUID
	}
	if err := validateBookingUpdate(req); err != nil {
		return nil, err
	}

	current, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := current.Snapshot()

	booking, err := s.bookingRepo.Update(ctx, id, req)
	if err != nil {
		logger.WithError(err).Error("Failed to update booking")
		return nil, err
	}

	changes := DiffFields(before, booking.Snapshot(), req.Fields())
	if len(changes) > 0 {
		meta := map[string]interface{}{
			"booking_id":  booking.ID,
			"event_id":    booking.EventID,
			"musician_id": booking.MusicianID,
		}
		written := recordChanges(ctx, s.history, logger, ac.ActorID, domain.EntityBooking, booking.ID, changes, meta)
		logger.WithFields(log.Fields{
			"changed":  len(changes),
			"recorded": written,
		}).Info("Booking updated")
	}

	// Triggered by the request touching status, not by the value changing.
	if req.Status != nil && s.notifier != nil {
		s.notifier.NotifyStatusChange(ctx, logger, booking.ID, booking.Status)
	}

	return booking, nil
}
