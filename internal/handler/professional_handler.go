package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"minidocto/internal/errors"
	"minidocto/internal/service"
)

// ProfessionalHandler handles the professional directory and availability
// endpoints.
type ProfessionalHandler struct {
	proService          service.ProfessionalService
	availabilityService service.AvailabilityService
}

// NewProfessionalHandler creates a new professional handler.
func NewProfessionalHandler(proService service.ProfessionalService, availabilityService service.AvailabilityService) *ProfessionalHandler {
	return &ProfessionalHandler{
		proService:          proService,
		availabilityService: availabilityService,
	}
}

// SlotRequest represents an availability mutation. The acting professional is
// taken from the body rather than the token, matching the original API shape.
type SlotRequest struct {
	UserID string    `json:"userId" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`
}

// List godoc
// @Summary List professionals sorted by score descending
// @Tags professionals
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /professionals [get]
func (h *ProfessionalHandler) List(c echo.Context) error {
	pros, err := h.proService.ListProfessionals(c.Request().Context())
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, pros)
}

// Get godoc
// @Summary Get a professional by id
// @Tags professionals
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /professionals/{id} [get]
func (h *ProfessionalHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{Message: errors.ErrProfessionalNotFound.Error()})
	}
	pro, err := h.proService.GetProfessional(c.Request().Context(), id)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, pro)
}

// AddAvailability godoc
// @Summary Publish an open slot
// @Tags professionals
// @Accept json
// @Produce json
// @Param request body SlotRequest true "Slot data"
// @Success 200 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /professionals/availability [post]
func (h *ProfessionalHandler) AddAvailability(c echo.Context) error {
	userID, at, err := h.bindSlot(c)
	if err != nil {
		return err
	}
	slots, err := h.availabilityService.AddSlot(c.Request().Context(), userID, at)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, slots)
}

// RemoveAvailability godoc
// @Summary Withdraw an open slot
// @Tags professionals
// @Accept json
// @Produce json
// @Param request body SlotRequest true "Slot data"
// @Success 200 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /professionals/availability [delete]
func (h *ProfessionalHandler) RemoveAvailability(c echo.Context) error {
	userID, at, err := h.bindSlot(c)
	if err != nil {
		return err
	}
	slots, err := h.availabilityService.RemoveSlot(c.Request().Context(), userID, at)
	if err != nil {
		he := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(he.StatusCode, errors.ErrorResponse{Message: he.Message})
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *ProfessionalHandler) bindSlot(c echo.Context) (uuid.UUID, time.Time, error) {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return uuid.Nil, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return uuid.Nil, time.Time{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		// unparseable ids cannot belong to a professional
		return uuid.Nil, time.Time{}, echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{Message: errors.ErrNotProfessional.Error()})
	}
	return userID, req.Date, nil
}
