package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"leavedesk/internal/errors"
	"leavedesk/internal/repository"
	"leavedesk/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves the spreadsheet export of the filtered leave table.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Export godoc
// @Summary Export filtered leave rows as an XLSX report
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param search query string false "Employee name substring, case-insensitive"
// @Param from query string true "Inclusive lower leave_date bound (YYYY-MM-DD)"
// @Param to query string true "Inclusive upper leave_date bound (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/export [get]
func (h *ReportHandler) Export(c echo.Context) error {
	filter := repository.LeaveFilter{
		Search: c.QueryParam("search"),
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
	}

	data, filename, err := h.reportService.Export(c.Request().Context(), filter)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, xlsxContentType, data)
}
