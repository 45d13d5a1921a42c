package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"nutritrack/internal/domain"
)

// Response represents a standard API response format
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Code    int         `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func sendJSONResponse(c echo.Context, data interface{}, statusCode int) error {
	return c.JSON(statusCode, Response{
		Status: "success",
		Data:   data,
		Code:   statusCode,
	})
}

func sendJSONError(c echo.Context, errMsg string, statusCode int) error {
	return c.JSON(statusCode, Response{
		Status:  "error",
		Message: errMsg,
		Code:    statusCode,
	})
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrConnection), errors.Is(err, domain.ErrConfiguration):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func sendDomainError(c echo.Context, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	return sendJSONError(c, msg, status)
}
