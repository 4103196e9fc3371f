package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avdeevm/social-network-api/internal/models"
	"github.com/avdeevm/social-network-api/internal/repo"
	"github.com/avdeevm/social-network-api/internal/tokens"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Role{}))
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	return &AuthService{
		Repo:  repo.New(newTestDB(t)),
		Codec: tokens.NewCodec([]byte("test-secret"), 30*time.Minute, 7*24*time.Hour),
	}
}

func registerAlice(t *testing.T, svc *AuthService) *AuthResult {
	t.Helper()

	res, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "Passw0rd",
	})
	require.NoError(t, err)
	return res
}
