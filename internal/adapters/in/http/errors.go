package http

import (
	"errors"
	"net/http"

	"pharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON error envelope returned by every endpoint.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// statusFromError maps domain errors to HTTP status codes. Unrecognized
// errors surface as 500 without leaking the message.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrPaymentFailed):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrInsufficientStock),
		errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrRefundFailed):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status with the error's message.
func respondError(ctx echo.Context, err error) error {
	code := statusFromError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	return ctx.JSON(code, errorResponse{Code: code, Message: message})
}
