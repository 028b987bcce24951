package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"leavedesk/internal/errors"
	"leavedesk/internal/service"
)

// LeaveHandler handles the employee-facing leave endpoints.
type LeaveHandler struct {
	leaveService service.LeaveService
}

// NewLeaveHandler creates a new leave handler.
func NewLeaveHandler(leaveService service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveService: leaveService}
}

// LeaveRequest represents a leave submission or edit. All four fields are
// required.
type LeaveRequest struct {
	LeaveType    string `json:"leave_type" validate:"required"`
	LeavePurpose string `json:"leave_purpose" validate:"required"`
	LeaveTime    string `json:"leave_time" validate:"required"`
	LeaveDate    string `json:"leave_date" validate:"required"`
}

func (r LeaveRequest) input() service.LeaveInput {
	return service.LeaveInput{
		LeaveType:    r.LeaveType,
		LeavePurpose: r.LeavePurpose,
		LeaveTime:    r.LeaveTime,
		LeaveDate:    r.LeaveDate,
	}
}

// List godoc
// @Summary List the caller's leave requests
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Leave
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /leaves [get]
func (h *LeaveHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	leaves, err := h.leaveService.ListByUser(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leaves)
}

// Create godoc
// @Summary Submit a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LeaveRequest true "Leave data"
// @Success 201 {object} model.Leave
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /leaves [post]
func (h *LeaveHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req LeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leave, err := h.leaveService.Create(c.Request().Context(), userID, req.input())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, leave)
}

// Update godoc
// @Summary Edit a leave request
// @Tags leaves
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param request body LeaveRequest true "Leave data"
// @Success 200 {object} model.Leave
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /leaves/{id} [put]
func (h *LeaveHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := leaveID(c)
	if err != nil {
		return err
	}

	var req LeaveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leave, err := h.leaveService.Update(c.Request().Context(), id, userID, req.input())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leave)
}

// Delete godoc
// @Summary Delete a leave request
// @Tags leaves
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /leaves/{id} [delete]
func (h *LeaveHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := leaveID(c)
	if err != nil {
		return err
	}

	if err := h.leaveService.Delete(c.Request().Context(), id, userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "leave request deleted",
	})
}

func leaveID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid leave id",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}
