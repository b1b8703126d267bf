package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"booking-service/internal/domain"
	"booking-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

// ActorHeader carries the id of the signed-in user making the request.
const ActorHeader = "X-User-ID"

type EventService interface {
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	UpdateEvent(ctx context.Context, ac service.ActionContext, id string, req domain.UpdateEventRequest) (*domain.Event, error)
}

type BookingService interface {
	GetBooking(ctx context.Context, id string) (*domain.BookingDetails, error)
	UpdateBooking(ctx context.Context, ac service.ActionContext, id string, req domain.UpdateBookingRequest) (*domain.Booking, error)
}

type HistoryService interface {
	ListHistory(ctx context.Context, subjectID string, limit, offset int) ([]domain.EventHistory, error)
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	events        EventService
	bookings      BookingService
	history       HistoryService
	db            Pinger
	systemActorID string
	logger        log.FieldLogger
}

func NewServer(events EventService, bookings BookingService, history HistoryService, db Pinger, systemActorID string, logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{
		events:        events,
		bookings:      bookings,
		history:       history,
		db:            db,
		systemActorID: systemActorID,
		logger:        logger,
	}
}

// Register wires middleware and routes onto e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	e.GET("/health", s.HealthCheck)

	api := e.Group("/api")

	events := api.Group("/events")
	events.GET("/:id", s.GetEvent)
	events.PUT("/:id", s.UpdateEvent)
	events.GET("/:id/history", s.ListHistory)

	bookings := api.Group("/bookings")
	bookings.GET("/:id", s.GetBooking)
	bookings.PUT("/:id", s.UpdateBooking)
	bookings.GET("/:id/history", s.ListHistory)
}

func (s *Server) HealthCheck(c echo.Context) error {
	if err := s.db.PingContext(c.Request().Context()); err != nil {
		s.logger.WithField("error", err).Error("Health check failed: database is down")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  "database connection error",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// actionContext resolves the acting user and builds a request-scoped logger.
func (s *Server) actionContext(c echo.Context) service.ActionContext {
	actor := c.Request().Header.Get(ActorHeader)
	if actor == "" {
		actor = s.systemActorID
	}
	return service.ActionContext{
		ActorID: actor,
		Logger: s.logger.WithFields(log.Fields{
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			"actor_id":   actor,
		}),
	}
}

func handleError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, domain.ErrBookingNotFound):
		return http.StatusNotFound, "booking not found"
	case errors.Is(err, domain.ErrInvalidUUID),
		errors.Is(err, domain.ErrInvalidEventTitle),
		errors.Is(err, domain.ErrInvalidTicketPrice),
		errors.Is(err, domain.ErrInvalidEventDate),
		errors.Is(err, domain.ErrInvalidEventStatus),
		errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrInvalidBookingStatus),
		errors.Is(err, domain.ErrInvalidProposedFee):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (s *Server) errorResponse(c echo.Context, err error, fields log.Fields) error {
	status, msg := handleError(err)
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithFields(fields).Error("Request failed")
	}
	return c.JSON(status, map[string]string{
		"error": msg,
	})
}

func (s *Server) ListHistory(c echo.Context) error {
	id := c.Param("id")

	limit := 20
	offset := 0
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 {
		limit = l
	}
	if o, err := strconv.Atoi(c.QueryParam("offset")); err == nil && o >= 0 {
		offset = o
	}

	entries, err := s.history.ListHistory(c.Request().Context(), id, limit, offset)
	if err != nil {
		return s.errorResponse(c, err, log.Fields{"subject_id": id})
	}

	return c.JSON(http.StatusOK, entries)
}
