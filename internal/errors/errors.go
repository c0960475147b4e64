package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized is returned when no valid session is present.
	ErrUnauthorized = errors.New("authentication required")
	// ErrForbidden is returned when the caller's role does not permit the action.
	ErrForbidden = errors.New("insufficient permissions")
	// ErrPollNotFound is returned when a poll is not found.
	ErrPollNotFound = errors.New("poll not found")
	// ErrOptionNotFound is returned when a poll option is not found.
	ErrOptionNotFound = errors.New("poll option not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidOption is returned when the option does not belong to the poll.
	ErrInvalidOption = errors.New("option does not belong to this poll")
	// ErrAlreadyVoted is returned when the user already has a vote on the poll.
	ErrAlreadyVoted = errors.New("you have already voted in this poll")
	// ErrPollNotActive is returned when the poll is not open for voting.
	ErrPollNotActive = errors.New("poll is not active")
	// ErrPollExpired is returned when the poll's end time has passed.
	ErrPollExpired = errors.New("poll has ended")
	// ErrConstraintViolation is returned when a store-level constraint rejects a write.
	ErrConstraintViolation = errors.New("operation conflicts with existing data")
	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = errors.New("invalid input")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Lifecycle errors use the
// full wrapped message so callers can attach context (e.g. the poll's start
// time) without losing the classification.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrPollNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "POLL_NOT_FOUND")
	case errors.Is(err, ErrOptionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "OPTION_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidOption):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OPTION")
	case errors.Is(err, ErrAlreadyVoted):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_VOTED")
	case errors.Is(err, ErrPollNotActive):
		return NewHTTPError(http.StatusConflict, err.Error(), "POLL_NOT_ACTIVE")
	case errors.Is(err, ErrPollExpired):
		return NewHTTPError(http.StatusGone, err.Error(), "POLL_EXPIRED")
	case errors.Is(err, ErrConstraintViolation):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONSTRAINT_VIOLATION")
	case errors.Is(err, ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
