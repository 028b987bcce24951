package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrLeaveNotFound is returned when a leave request is not found.
	ErrLeaveNotFound = errors.New("leave request not found")
	// ErrMissingField is returned when a required leave field is absent.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidLeaveType is returned when the leave type is not an offered category.
	ErrInvalidLeaveType = errors.New("invalid leave type")
	// ErrInvalidLeaveTime is returned when the duration unit is unknown.
	ErrInvalidLeaveTime = errors.New("invalid leave time")
	// ErrInvalidLeaveDate is returned when the date does not parse as YYYY-MM-DD.
	ErrInvalidLeaveDate = errors.New("invalid leave date")
	// ErrWeekendDate is returned when the requested date falls on a weekend.
	ErrWeekendDate = errors.New("leave date falls on a weekend")
	// ErrInvalidStatus is returned when the status is not Approved or Rejected.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrForbidden is returned when a caller touches a leave they do not own.
	ErrForbidden = errors.New("forbidden")
	// ErrDateRangeRequired is returned when an export is requested without bounds.
	ErrDateRangeRequired = errors.New("date range is required for export")
	// ErrNotificationsUnavailable is returned when the pub/sub backend is down.
	ErrNotificationsUnavailable = errors.New("notifications unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrUserNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case ErrLeaveNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "LEAVE_NOT_FOUND")
	case ErrMissingField:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELD")
	case ErrInvalidLeaveType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LEAVE_TYPE")
	case ErrInvalidLeaveTime:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LEAVE_TIME")
	case ErrInvalidLeaveDate:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_LEAVE_DATE")
	case ErrWeekendDate:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WEEKEND_DATE")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrDateRangeRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DATE_RANGE_REQUIRED")
	case ErrNotificationsUnavailable:
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "NOTIFICATIONS_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
