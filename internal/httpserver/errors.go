package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avdeevm/social-network-api/internal/service"
	"github.com/avdeevm/social-network-api/internal/tokens"
)

// httpError maps the service error taxonomy onto status codes in one
// place. Anything unrecognized is a 500 with a generic message.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, tokens.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAccountInactive):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
