package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventlify/booking-engine/internal/dto"
	"github.com/eventlify/booking-engine/internal/middleware"
	"github.com/eventlify/booking-engine/internal/models"
	"github.com/eventlify/booking-engine/internal/repository"
	"github.com/eventlify/booking-engine/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc         service.LifecycleService
	eventRepo   repository.EventRepository
	bookingRepo repository.BookingRepository
}

func NewBookingHandler(svc service.LifecycleService, eventRepo repository.EventRepository, bookingRepo repository.BookingRepository) *BookingHandler {
	return &BookingHandler{svc: svc, eventRepo: eventRepo, bookingRepo: bookingRepo}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	bookings := e.Group("/api/v1/bookings")
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/resolve", h.ResolvePayment, middleware.RequireActor)
	bookings.DELETE("/:id", h.CancelBooking, middleware.RequireActor)

	e.GET("/api/v1/events/:id/status", h.GetEventStatus)
}

func (h *BookingHandler) ResolvePayment(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.ResolvePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	actor := middleware.ActorFrom(c)
	result, err := h.svc.ResolvePayment(c.Request().Context(), uint(bookingID), actor, models.PaymentStatus(req.Decision))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToResolvePaymentResponse(result))
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	actor := middleware.ActorFrom(c)
	result, err := h.svc.CancelBooking(c.Request().Context(), uint(bookingID), actor)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.CancelBookingResponse{
		BookingID: result.BookingID,
		Refunded:  result.Refunded,
	})
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), uint(id))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetEventStatus(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.eventRepo.FindByID(c.Request().Context(), uint(eventID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}

	confirmed, err := h.bookingRepo.CountByStatus(c.Request().Context(), event.ID, models.PaymentConfirmed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.EventStatusResponse{
		ID:               event.ID,
		Title:            event.Title,
		Capacity:         event.Capacity,
		AvailableTickets: event.AvailableTickets,
		Confirmed:        confirmed,
	})
}

func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, service.ErrEventNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidDecision):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
