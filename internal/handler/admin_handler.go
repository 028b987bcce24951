package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"leavedesk/internal/errors"
	"leavedesk/internal/model"
	"leavedesk/internal/repository"
	"leavedesk/internal/service"
)

const defaultPerPage = 10

// AdminHandler handles the admin review endpoints: the filtered leave
// table, status decisions, dashboard stats and the employee roster.
type AdminHandler struct {
	leaveService service.LeaveService
	authService  service.AuthService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(leaveService service.LeaveService, authService service.AuthService) *AdminHandler {
	return &AdminHandler{leaveService: leaveService, authService: authService}
}

// StatusRequest represents an approve/reject decision.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LeaveListResponse represents one page of the admin leave table.
type LeaveListResponse struct {
	Leaves     []model.Leave `json:"leaves"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int64         `json:"total_pages"`
}

// ListLeaves godoc
// @Summary List leave requests with optional filters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param search query string false "Employee name substring, case-insensitive"
// @Param from query string false "Inclusive lower leave_date bound (YYYY-MM-DD)"
// @Param to query string false "Inclusive upper leave_date bound (YYYY-MM-DD)"
// @Param page query int false "Page number, 1-based"
// @Param per_page query int false "Page size"
// @Success 200 {object} LeaveListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/leaves [get]
func (h *AdminHandler) ListLeaves(c echo.Context) error {
	filter := leaveFilterFromQuery(c)

	leaves, total, err := h.leaveService.ListFiltered(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	totalPages := (total + int64(filter.PerPage) - 1) / int64(filter.PerPage)
	return c.JSON(http.StatusOK, LeaveListResponse{
		Leaves:     leaves,
		Total:      total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		TotalPages: totalPages,
	})
}

// SetStatus godoc
// @Summary Approve or reject a leave request
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave ID"
// @Param request body StatusRequest true "Decision"
// @Success 200 {object} model.Leave
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/leaves/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	id, err := leaveID(c)
	if err != nil {
		return err
	}

	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	leave, err := h.leaveService.SetStatus(c.Request().Context(), id, model.LeaveStatus(req.Status))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leave)
}

// Stats godoc
// @Summary Dashboard summary counts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.leaveService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}

// Employees godoc
// @Summary List non-admin employees
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/employees [get]
func (h *AdminHandler) Employees(c echo.Context) error {
	employees, err := h.authService.ListEmployees(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, employees)
}

func leaveFilterFromQuery(c echo.Context) repository.LeaveFilter {
	filter := repository.LeaveFilter{
		Search:  c.QueryParam("search"),
		From:    c.QueryParam("from"),
		To:      c.QueryParam("to"),
		Page:    1,
		PerPage: defaultPerPage,
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && perPage > 0 {
		filter.PerPage = perPage
	}
	return filter
}
