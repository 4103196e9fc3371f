package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avdeevm/social-network-api/internal/logging"
	"github.com/avdeevm/social-network-api/internal/service"
	"github.com/avdeevm/social-network-api/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		l.Warn("register_failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, transport.AuthResponse{
		Message:      "User registered successfully",
		User:         transport.NewUserResponse(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "bearer",
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		l.Warn("login_failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{
		User:         transport.NewUserResponse(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "bearer",
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	access, _, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		l.Warn("refresh_failed", "error", err)
		// Both a dead token and a dead account are a 401 here: the
		// caller holds no valid session either way.
		if errors.Is(err, service.ErrAccountInactive) {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found or inactive")
		}
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.RefreshResponse{
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// Logout has no server-side effect: tokens are not stored, so the client
// discards them.
func (h *AuthHTTP) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: "Logged out successfully. Please delete tokens from client.",
	})
}
