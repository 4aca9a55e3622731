package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	appErrors "healthlog/internal/pkg/errors"
	"healthlog/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrEntryNotFound),
		errors.Is(err, appErrors.ErrMedicationSetNotFound),
		errors.Is(err, appErrors.ErrReminderNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrInvalidReminder),
		errors.Is(err, appErrors.ErrInvalidEntry):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrNotification),
		errors.Is(err, appErrors.ErrScheduling):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c echo.Context, log logger.Logger, err error) error {
	var pe *paramError
	if errors.As(err, &pe) {
		return badRequest(c, pe.Error())
	}
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Request %s %s failed", c.Request().Method, c.Path()), err)
		return c.JSON(status, ErrorResponse{Error: appErrors.ErrInternalServer.Error()})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// paramError is a malformed path parameter.
type paramError struct {
	name, value string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.name, e.value)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, &paramError{name: name, value: c.Param(name)}
	}
	return uint(id), nil
}
