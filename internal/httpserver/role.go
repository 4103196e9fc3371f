package httpserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/service"
	"github.com/avdeevm/social-network-api/internal/transport"
)

type RoleHTTP struct {
	Svc *service.RoleService
}

func (h *RoleHTTP) Create(c echo.Context) error {
	var req transport.RoleCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role name is required")
	}

	role := models.Role{
		Name:              req.Name,
		Description:       req.Description,
		CanPost:           boolOr(req.CanPost, true),
		CanComment:        boolOr(req.CanComment, true),
		CanLike:           boolOr(req.CanLike, true),
		CanDeleteOwnPosts: boolOr(req.CanDeleteOwnPosts, true),
		CanDeleteAnyPosts: boolOr(req.CanDeleteAnyPosts, false),
		CanBanUsers:       boolOr(req.CanBanUsers, false),
		CanVerifyUsers:    boolOr(req.CanVerifyUsers, false),
		CanManageRoles:    boolOr(req.CanManageRoles, false),
		MaxPostsPerDay:    intOr(req.MaxPostsPerDay, 100),
		MaxFollowers:      intOr(req.MaxFollowers, 10000),
	}

	if err := h.Svc.Create(c.Request().Context(), &role); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, role)
}

func (h *RoleHTTP) List(c echo.Context) error {
	roles, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RoleHTTP) Get(c echo.Context) error {
	id, err := roleID(c)
	if err != nil {
		return err
	}

	role, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHTTP) Update(c echo.Context) error {
	id, err := roleID(c)
	if err != nil {
		return err
	}

	var req transport.RoleUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	role, err := h.Svc.Update(c.Request().Context(), id, service.RoleUpdate{
		Description:       req.Description,
		CanPost:           req.CanPost,
		CanComment:        req.CanComment,
		CanLike:           req.CanLike,
		CanDeleteOwnPosts: req.CanDeleteOwnPosts,
		CanDeleteAnyPosts: req.CanDeleteAnyPosts,
		CanBanUsers:       req.CanBanUsers,
		CanVerifyUsers:    req.CanVerifyUsers,
		CanManageRoles:    req.CanManageRoles,
		MaxPostsPerDay:    req.MaxPostsPerDay,
		MaxFollowers:      req.MaxFollowers,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, role)
}

func (h *RoleHTTP) Delete(c echo.Context) error {
	id, err := roleID(c)
	if err != nil {
		return err
	}

	role, err := h.Svc.Delete(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{
		Message: fmt.Sprintf("Role %q deleted successfully", role.Name),
	})
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func roleID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid role id")
	}
	return uint(id), nil
}
