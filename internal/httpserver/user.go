package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avdeevm/social-network-api/internal/logging"
	mw "github.com/avdeevm/social-network-api/internal/middleware"
	"github.com/avdeevm/social-network-api/internal/service"
	"github.com/avdeevm/social-network-api/internal/transport"
	"github.com/avdeevm/social-network-api/internal/util"
)

type UserHTTP struct {
	Users *service.UserService
	Auth  *service.AuthService

	DefaultPageSize int
	MaxPageSize     int
}

func (h *UserHTTP) Me(c echo.Context) error {
	user := mw.CurrentUser(c)
	return c.JSON(http.StatusOK, transport.NewUserResponse(user))
}

func (h *UserHTTP) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	user := mw.CurrentUser(c)

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	updated, err := h.Users.UpdateProfile(ctx, user.ID, service.ProfileUpdate{
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.NewUserResponse(updated))
}

func (h *UserHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "change_password")
	user := mw.CurrentUser(c)

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Auth.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword); err != nil {
		l.Warn("change_password_failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Password updated successfully"})
}

func (h *UserHTTP) DeactivateMe(c echo.Context) error {
	ctx := c.Request().Context()
	user := mw.CurrentUser(c)

	if err := h.Users.Deactivate(ctx, user.ID); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, transport.MessageResponse{Message: "Account deactivated successfully"})
}

func (h *UserHTTP) MyStats(c echo.Context) error {
	user := mw.CurrentUser(c)
	stats, err := h.Users.GetStats(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *UserHTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	limit = util.Clamp(limit, h.DefaultPageSize, h.MaxPageSize)

	users, err := h.Users.Search(c.Request().Context(), q, limit)
	if err != nil {
		return httpError(err)
	}

	items := make([]transport.UserListItem, len(users))
	for i := range users {
		items[i] = transport.NewUserListItem(&users[i])
	}
	return c.JSON(http.StatusOK, items)
}

func (h *UserHTTP) PublicProfile(c echo.Context) error {
	user, err := h.Users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.NewPublicProfile(user))
}

func (h *UserHTTP) UserStats(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	stats, err := h.Users.GetStats(c.Request().Context(), uint(id))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
