package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"leavedesk/internal/availability"
	"leavedesk/internal/errors"
	"leavedesk/internal/service"
)

// AvailabilityHandler serves the weekly availability summary for the
// resource chart.
type AvailabilityHandler struct {
	availabilityService service.AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler.
func NewAvailabilityHandler(availabilityService service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// Week godoc
// @Summary Per-day availability for one working week
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param week query string false "Any date inside the target week (YYYY-MM-DD); defaults to next week"
// @Success 200 {array} availability.DaySummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/availability [get]
func (h *AvailabilityHandler) Week(c echo.Context) error {
	// The chart defaults to next week's resources.
	weekStart := time.Now().AddDate(0, 0, 7)
	if raw := c.QueryParam("week"); raw != "" {
		parsed, err := time.Parse(availability.DateLayout, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid week date",
				Code:  "INVALID_DATE",
			})
		}
		weekStart = parsed
	}

	summary, err := h.availabilityService.WeekSummary(c.Request().Context(), weekStart)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}
