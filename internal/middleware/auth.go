package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/repo"
	"github.com/avdeevm/social-network-api/internal/tokens"
)

const userContextKey = "current_user"

type Auth struct {
	Codec *tokens.Codec
	Repo  *repo.Repo
}

func NewAuth(codec *tokens.Codec, r *repo.Repo) *Auth {
	return &Auth{Codec: codec, Repo: r}
}

// RequireAuth authenticates the request from the Authorization: Bearer
// header, loads the account and rejects deactivated ones.
func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := bearerToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := m.Codec.Validate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
		}

		user, err := m.Repo.UserByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
		}
		if !user.IsActive {
			return echo.NewHTTPError(http.StatusForbidden, "user account is inactive")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireSuperuser is RequireAuth plus an is_superuser check.
func (m *Auth) RequireSuperuser(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || !user.IsSuperuser {
			return echo.NewHTTPError(http.StatusForbidden, "not enough permissions, admin access required")
		}
		return next(c)
	})
}

func CurrentUser(c echo.Context) *models.User {
	if v := c.Get(userContextKey); v != nil {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
