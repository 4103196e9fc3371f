package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateProfileAndPublicView(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.register("alice", "a@x.com", "Passw0rd")
	access, _ := resp["access_token"].(string)

	rec := env.doJSON(http.MethodPut, "/api/v1/users/me", map[string]string{
		"full_name": "Alice Liddell",
		"bio":       "wonderland resident",
	}, access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var me map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Alice Liddell", me["full_name"])

	rec = env.doJSON(http.MethodGet, "/api/v1/users/alice", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var public map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &public))
	assert.Equal(t, "alice", public["username"])
	assert.Equal(t, "wonderland resident", public["bio"])
	// Public profiles never expose the email.
	_, hasEmail := public["email"]
	assert.False(t, hasEmail)

	rec = env.doJSON(http.MethodGet, "/api/v1/users/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangePassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.register("alice", "a@x.com", "Passw0rd")
	access, _ := resp["access_token"].(string)

	rec := env.doJSON(http.MethodPut, "/api/v1/users/me/password", map[string]string{
		"old_password": "WrongOld1",
		"new_password": "NewPassw0rd",
	}, access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPut, "/api/v1/users/me/password", map[string]string{
		"old_password": "Passw0rd",
		"new_password": "weak",
	}, access)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSON(http.MethodPut, "/api/v1/users/me/password", map[string]string{
		"old_password": "Passw0rd",
		"new_password": "NewPassw0rd",
	}, access)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "a@x.com",
		"password": "NewPassw0rd",
	}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	// The session issued before the change still works.
	rec = env.doJSON(http.MethodGet, "/api/v1/users/me", nil, access)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.register("alice", "a@x.com", "Passw0rd")
	access, _ := resp["access_token"].(string)
	user, _ := resp["user"].(map[string]any)
	id := int(user["id"].(float64))

	rec := env.doJSON(http.MethodGet, "/api/v1/users/me/stats", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, float64(0), stats["followers_count"])

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/stats", id), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/v1/users/9999/stats", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchUsers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.register("alice", "a@x.com", "Passw0rd")
	env.register("alicia", "b@x.com", "Passw0rd")
	env.register("bob", "c@x.com", "Passw0rd")

	rec := env.doJSON(http.MethodGet, "/api/v1/users/search?q=alic", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var items []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)

	rec = env.doJSON(http.MethodGet, "/api/v1/users/search?q=alic&limit=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	rec = env.doJSON(http.MethodGet, "/api/v1/users/search", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoleEndpoints(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.register("alice", "a@x.com", "Passw0rd")
	userToken, _ := resp["access_token"].(string)
	adminToken := env.seedSuperuser("admin", "admin@x.com", "Adm1nPass")

	body := map[string]any{
		"name":                 "moderator",
		"description":          "cleanup crew",
		"can_delete_any_posts": true,
	}

	// Writes need a superuser.
	rec := env.doJSON(http.MethodPost, "/api/v1/roles", body, userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.doJSON(http.MethodPost, "/api/v1/roles", body, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/roles", body, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var role map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &role))
	assert.Equal(t, "moderator", role["name"])
	// Omitted capabilities keep their defaults.
	assert.Equal(t, true, role["can_post"])
	assert.Equal(t, false, role["can_ban_users"])
	assert.Equal(t, float64(100), role["max_posts_per_day"])

	rec = env.doJSON(http.MethodPost, "/api/v1/roles", body, adminToken)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Reads are public.
	rec = env.doJSON(http.MethodGet, "/api/v1/roles", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var roles []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
	require.Len(t, roles, 1)

	id := int(role["id"].(float64))
	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/roles/%d", id), nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPut, fmt.Sprintf("/api/v1/roles/%d", id), map[string]any{
		"can_ban_users": true,
	}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &role))
	assert.Equal(t, true, role["can_ban_users"])
	assert.Equal(t, true, role["can_delete_any_posts"])

	rec = env.doJSON(http.MethodDelete, fmt.Sprintf("/api/v1/roles/%d", id), nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, fmt.Sprintf("/api/v1/roles/%d", id), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp := env.register("alice", "a@x.com", "Passw0rd")
	access, _ := resp["access_token"].(string)

	rec := env.doJSON(http.MethodDelete, "/api/v1/users/me", nil, access)
	require.Equal(t, http.StatusOK, rec.Code)

	// The token still decodes but the middleware rejects the account.
	rec = env.doJSON(http.MethodGet, "/api/v1/users/me", nil, access)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
