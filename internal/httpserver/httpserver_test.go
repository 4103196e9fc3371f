package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/hash"
	mw "github.com/avdeevm/social-network-api/internal/middleware"
	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/repo"
	"github.com/avdeevm/social-network-api/internal/service"
	"github.com/avdeevm/social-network-api/internal/tokens"
)

type testEnv struct {
	T     *testing.T
	E     *echo.Echo
	DB    *gorm.DB
	Repo  *repo.Repo
	Codec *tokens.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Role{}))

	r := repo.New(db)
	codec := tokens.NewCodec([]byte("test-secret"), 30*time.Minute, 7*24*time.Hour)

	authSvc := &service.AuthService{Repo: r, Codec: codec}
	userSvc := &service.UserService{Repo: r}
	roleSvc := &service.RoleService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler: &AuthHTTP{Svc: authSvc},
		UserHandler: &UserHTTP{Users: userSvc, Auth: authSvc, DefaultPageSize: 20, MaxPageSize: 100},
		RoleHandler: &RoleHTTP{Svc: roleSvc},
		AuthMW:      mw.NewAuth(codec, r),
	})

	return &testEnv{T: t, E: e, DB: db, Repo: r, Codec: codec}
}

func (env *testEnv) doJSON(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(username, email, password string) map[string]any {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	require.Equal(env.T, http.StatusCreated, rec.Code, rec.Body.String())

	var resp map[string]any
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (env *testEnv) seedSuperuser(username, email, password string) string {
	env.T.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		IsActive:     true,
		IsSuperuser:  true,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	token, _, err := env.Codec.IssueAccess(user.ID, user.Email)
	require.NoError(env.T, err)
	return token
}
