package contract

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/officeflow/internal/domain"
)

type ErrorCode string

const (
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrCodeConflict       ErrorCode = "CONFLICT"
	ErrCodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body returned for every failed API call.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// RequestError marks a malformed request that never reached a service.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// Classify maps a service error onto an API error code.
func Classify(err error) ErrorCode {
	var reqErr *RequestError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrTemplateNotFound),
		errors.Is(err, domain.ErrInstanceNotFound),
		errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return ErrCodeNotFound
	case errors.Is(err, domain.ErrInvalidTemplate), errors.As(err, &reqErr):
		return ErrCodeInvalidRequest
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInstanceNotActive),
		errors.Is(err, domain.ErrDependenciesIncomplete),
		errors.Is(err, domain.ErrTemplateInUse):
		return ErrCodeConflict
	default:
		return ErrCodeInternal
	}
}

func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
