package integration

import (
	"context"
	"testing"

	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/oauth"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/rafiul/lifesure-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Integration_RegisterAndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user, err := svc.Register(ctx, "rahim@example.com", "password123", "Rahim", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)

	authed, err := svc.Authenticate(ctx, "rahim@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(ctx, "rahim@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Integration_Register_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	_, err := svc.Register(ctx, "taken@example.com", "password123", "First", nil)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "taken@example.com", "password123", "Second", nil)
	assert.ErrorIs(t, err, services.ErrEmailAlreadyInUse)
}

func TestUserService_Integration_FindOrCreateFromOAuth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	info := &oauth.UserInfo{
		Email:     "google-user@example.com",
		Name:      "Google User",
		AvatarURL: "https://example.com/avatar.png",
		ID:        "google-12345",
		Provider:  "google",
	}

	user1, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user1.Role)

	// Signing in again finds the same record.
	user2, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, user1.ID, user2.ID)
}

func TestUserService_Integration_RoleSurvivesOAuthSignIn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	info := &oauth.UserInfo{
		Email:    "promoted@example.com",
		Name:     "Promoted User",
		ID:       "google-55555",
		Provider: "google",
	}

	user, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)

	_, err = svc.UpdateRole(ctx, user.ID, models.RoleAgent)
	require.NoError(t, err)

	// A later federated sign-in must not reset the stored role.
	again, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAgent, again.Role)

	role, err := svc.GetRoleByEmail(ctx, "promoted@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAgent, role)
}

func TestUserService_Integration_UpdateProfile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t, testutil.WithEmail("profile@example.com"))

	name := "Renamed"
	nid := "9876543210"
	updated, err := svc.UpdateProfile(ctx, user.Email, &name, nil, &nid, nil)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	require.NotNil(t, updated.NID)
	assert.Equal(t, "9876543210", *updated.NID)
}

func TestUserService_Integration_ListByRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	fixtures.CreateUser(t, testutil.WithRole(models.RoleAgent))
	fixtures.CreateUser(t, testutil.WithRole(models.RoleAgent))
	fixtures.CreateUser(t)

	agents, err := svc.ListByRole(ctx, models.RoleAgent)
	require.NoError(t, err)
	assert.Len(t, agents, 2)

	everyone, err := svc.ListByRole(ctx, "")
	require.NoError(t, err)
	assert.Len(t, everyone, 3)
}

func TestUserService_Integration_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err := svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}
