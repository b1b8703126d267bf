package server

import (
	"net/http"

	"booking-service/internal/domain"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

func (s *Server) GetBooking(c echo.Context) error {
	id := c.Param("id")

	details, err := s.bookings.GetBooking(c.Request().Context(), id)
	if err != nil {
		return s.errorResponse(c, err, log.Fields{"booking_id": id})
	}

	return c.JSON(http.StatusOK, details)
}

func (s *Server) UpdateBooking(c echo.Context) error {
	id := c.Param("id")

	var req domain.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	booking, err := s.bookings.UpdateBooking(c.Request().Context(), s.actionContext(c), id, req)
	if err != nil {
		return s.errorResponse(c, err, log.Fields{"booking_id": id})
	}

	return c.JSON(http.StatusOK, booking)
}
