package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/avdeevm/social-network-api/internal/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	UserHandler *UserHTTP
	RoleHandler *RoleHTTP
	AuthMW      *mw.Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)
	auth.POST("/logout", d.AuthHandler.Logout)

	users := v1.Group("/users")
	users.GET("/search", d.UserHandler.Search)
	users.GET("/:username", d.UserHandler.PublicProfile)
	users.GET("/:id/stats", d.UserHandler.UserStats)

	me := users.Group("/me", d.AuthMW.RequireAuth)
	me.GET("", d.UserHandler.Me)
	me.PUT("", d.UserHandler.UpdateMe)
	me.PUT("/password", d.UserHandler.ChangePassword)
	me.DELETE("", d.UserHandler.DeactivateMe)
	me.GET("/stats", d.UserHandler.MyStats)

	roles := v1.Group("/roles")
	roles.GET("", d.RoleHandler.List)
	roles.GET("/:id", d.RoleHandler.Get)

	adminRoles := v1.Group("/roles", d.AuthMW.RequireSuperuser)
	adminRoles.POST("", d.RoleHandler.Create)
	adminRoles.PUT("/:id", d.RoleHandler.Update)
	adminRoles.DELETE("/:id", d.RoleHandler.Delete)
}
