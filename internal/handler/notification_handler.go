package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"leavedesk/internal/errors"
	"leavedesk/internal/service"
)

// NotificationHandler streams leave change events to admin clients and
// serves the catch-up feed keyed by the client's last-viewed timestamp.
type NotificationHandler struct {
	notifier     service.Notifier
	leaveService service.LeaveService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notifier service.Notifier, leaveService service.LeaveService) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, leaveService: leaveService}
}

// Stream godoc
// @Summary Server-sent events stream of leave changes
// @Tags admin
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {string} string "event stream"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /admin/notifications/stream [get]
func (h *NotificationHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()

	// The subscription lives exactly as long as the client connection;
	// disconnecting cancels ctx and releases it.
	events, err := h.notifier.Subscribe(ctx)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(res, "data: %s\n\n", payload)
			res.Flush()
		}
	}
}

// Since godoc
// @Summary Leave changes after the client's last-viewed timestamp
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param since query string true "RFC3339 timestamp"
// @Success 200 {array} model.Leave
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/notifications [get]
func (h *NotificationHandler) Since(c echo.Context) error {
	since, err := time.Parse(time.RFC3339, c.QueryParam("since"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid since timestamp",
			Code:  "INVALID_TIMESTAMP",
		})
	}

	leaves, err := h.leaveService.ListUpdatedSince(c.Request().Context(), since)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, leaves)
}
