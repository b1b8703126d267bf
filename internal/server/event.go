package server

import (
	"net/http"

	"booking-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func (s *Server) GetEvent(c echo.Context) error {
	id := c.Param("id")

	event, err := s.events.GetEvent(c.Request().Context(), id)
	if err != nil {
		return s.errorResponse(c, err, log.Fields{"event_id": id})
	}

	return c.JSON(http.StatusOK, event)
}

func (s *Server) UpdateEvent(c echo.Context) error {
	id := c.Param("id")

	var req domain.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	event, err := s.events.UpdateEvent(c.Request().Context(), s.actionContext(c), id, req)
	if err != nil {
		return s.errorResponse(c, err, log.Fields{"event_id": id})
	}

	return c.JSON(http.StatusOK, event)
}
