package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Domain failures shared by the booking and payment flows.
var (
	InvalidAmount     = &Failure{Code: http.StatusBadRequest, Message: "amount must be greater than zero"}
	InvalidTransition = &Failure{Code: http.StatusConflict, Message: "booking status transition is not allowed"}
	StaleState        = &Failure{Code: http.StatusConflict, Message: "booking was modified concurrently, reload and retry"}
	BookingNotFound   = &Failure{Code: http.StatusNotFound, Message: "booking not found"}
	Unauthenticated   = &Failure{Code: http.StatusUnauthorized, Message: "authentication required"}
	InvalidSignature  = &Failure{Code: http.StatusBadRequest, Message: "invalid webhook signature"}
	ProcessorError    = &Failure{Code: http.StatusBadGateway, Message: "payment provider is unavailable, please try again"}
	NotConfigured     = &Failure{Code: http.StatusServiceUnavailable, Message: "payments are not configured on this server"}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// IsFailure reports whether err carries a Failure, i.e. its message is safe to show the caller.
func IsFailure(err error) bool {
	var fail *Failure

	return errors.As(err, &fail)
}
