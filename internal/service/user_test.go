package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	auth := newTestAuthService(t)
	return auth, &UserService{Repo: auth.Repo}
}

func TestUserService_GetByUsername(t *testing.T) {
	t.Parallel()

	auth, users := newTestUserService(t)
	registerAlice(t, auth)
	ctx := context.Background()

	user, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)

	// Lookup is case-insensitive because usernames are stored lowercase.
	user, err = users.GetByUsername(ctx, "ALICE")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfile_PartialFields(t *testing.T) {
	t.Parallel()

	auth, users := newTestUserService(t)
	res := registerAlice(t, auth)
	ctx := context.Background()

	bio := "hello there"
	updated, err := users.UpdateProfile(ctx, res.User.ID, ProfileUpdate{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "hello there", updated.Bio)
	assert.Equal(t, res.User.FullName, updated.FullName)

	name := "Alice Liddell"
	avatar := "https://cdn.example.com/alice.png"
	updated, err = users.UpdateProfile(ctx, res.User.ID, ProfileUpdate{
		FullName:  &name,
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", updated.FullName)
	assert.Equal(t, "https://cdn.example.com/alice.png", updated.AvatarURL)
	assert.Equal(t, "hello there", updated.Bio)

	_, err = users.UpdateProfile(ctx, 9999, ProfileUpdate{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Deactivate(t *testing.T) {
	t.Parallel()

	auth, users := newTestUserService(t)
	res := registerAlice(t, auth)
	ctx := context.Background()

	require.NoError(t, users.Deactivate(ctx, res.User.ID))

	// The row survives, only the flag flips.
	stored, err := users.GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, users.Deactivate(ctx, 9999), ErrNotFound)
}

func TestUserService_GetStats(t *testing.T) {
	t.Parallel()

	auth, users := newTestUserService(t)
	res := registerAlice(t, auth)
	ctx := context.Background()

	stats, err := users.GetStats(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.FollowersCount)
	assert.Equal(t, 0, stats.FollowingCount)
	assert.Equal(t, 0, stats.PostsCount)

	_, err = users.GetStats(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_Search_DatabaseFallback(t *testing.T) {
	t.Parallel()

	auth, users := newTestUserService(t)
	ctx := context.Background()

	seed := []RegisterInput{
		{Username: "alice", Email: "a@x.com", Password: "Passw0rd", FullName: "Alice Liddell"},
		{Username: "alicia", Email: "b@x.com", Password: "Passw0rd"},
		{Username: "bob", Email: "c@x.com", Password: "Passw0rd", FullName: "Bob Alice-Fan"},
		{Username: "carol", Email: "d@x.com", Password: "Passw0rd"},
	}
	for _, in := range seed {
		_, err := auth.Register(ctx, in)
		require.NoError(t, err)
	}

	// Matches username or full name, case-insensitively.
	found, err := users.Search(ctx, "ALIC", 20)
	require.NoError(t, err)
	names := make([]string, len(found))
	for i, u := range found {
		names[i] = u.Username
	}
	assert.ElementsMatch(t, []string{"alice", "alicia", "bob"}, names)

	// Inactive accounts disappear from results.
	alice, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, users.Deactivate(ctx, alice.ID))

	found, err = users.Search(ctx, "alic", 20)
	require.NoError(t, err)
	for _, u := range found {
		assert.NotEqual(t, "alice", u.Username)
	}

	// Limit is respected.
	found, err = users.Search(ctx, "alic", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
