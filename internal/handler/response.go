package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldtrans/internal/logger"
	"fieldtrans/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeServiceError(c echo.Context, err error) error {
	var fieldErr *service.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: fieldErr.Message, Field: fieldErr.Field})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, service.ErrMisconfigured):
		logger.Warn("content type misconfigured", "module", "handler", "action", "request", "resource", "content_type", "result", "failed", "path", c.Request().URL.Path, "error", err)
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed", "path", c.Request().URL.Path, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
