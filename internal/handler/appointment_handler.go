package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"minidocto/internal/errors"
	"minidocto/internal/model"
	"minidocto/internal/service"
)

// AppointmentHandler handles booking endpoints.
type AppointmentHandler struct {
	bookingService service.BookingService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(bookingService service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{bookingService: bookingService}
}

// BookRequest represents a booking request.
type BookRequest struct {
	PatientID      string    `json:"patientId" validate:"required"`
	ProfessionalID string    `json:"professionalId" validate:"required"`
	Date           time.Time `json:"date" validate:"required"`
}

// Book godoc
// @Summary Book an appointment against an open slot
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body BookRequest true "Booking data"
// @Success 201 {object} model.Appointment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{Message: errors.ErrProfessionalNotFound.Error()})
	}

	appt, err := h.bookingService.Book(c.Request().Context(), patientID, professionalID, req.Date)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusCreated, appt)
}

// ListForUser godoc
// @Summary List appointments of a patient or professional
// @Tags appointments
// @Produce json
// @Param userId path string true "Account ID"
// @Param role query string false "pro or user" default(user)
// @Success 200 {array} service.AppointmentView
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments/{userId} [get]
func (h *AppointmentHandler) ListForUser(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	role := c.QueryParam("role")
	if role != model.RoleProfessional {
		role = model.RolePatient
	}

	views, err := h.bookingService.ListForUser(c.Request().Context(), userID, role)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, views)
}

// Cancel godoc
// @Summary Cancel an appointment and return its slot
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{Message: errors.ErrAppointmentNotFound.Error()})
	}

	if err := h.bookingService.Cancel(c.Request().Context(), id); err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "appointment cancelled",
	})
}

// Complete godoc
// @Summary Mark an appointment as completed
// @Tags appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /appointments/{id}/complete [patch]
func (h *AppointmentHandler) Complete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{Message: errors.ErrAppointmentNotFound.Error()})
	}

	appt, err := h.bookingService.Complete(c.Request().Context(), id)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, appt)
}
