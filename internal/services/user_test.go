package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/oauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userCols = []string{
	"id", "email", "name", "photo_url", "role", "password_hash",
	"provider", "provider_id", "nid", "address", "created_at", "updated_at",
}

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewUserService(db), mock
}

func userRow(id uuid.UUID, email, name, role string, passwordHash *string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(userCols).
		AddRow(id, email, name, (*string)(nil), role, passwordHash,
			"password", (*string)(nil), (*string)(nil), (*string)(nil), now, now)
}

func TestUserService_Register_Success(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@example.com", "New User", (*string)(nil), models.RoleCustomer, pgxmock.AnyArg()).
		WillReturnRows(userRow(userID, "new@example.com", "New User", models.RoleCustomer, nil))

	user, err := svc.Register(ctx, "new@example.com", "password123", "New User", nil)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("taken@example.com", "Dup", (*string)(nil), models.RoleCustomer, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := svc.Register(ctx, "taken@example.com", "password123", "Dup", nil)

	assert.ErrorIs(t, err, ErrEmailAlreadyInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.Register(context.Background(), "x@example.com", "short", "X", nil)
	assert.Error(t, err)
}

func TestUserService_Authenticate_Success(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("user@example.com").
		WillReturnRows(userRow(userID, "user@example.com", "User", models.RoleCustomer, &hashStr))

	user, err := svc.Authenticate(ctx, "user@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("user@example.com").
		WillReturnRows(userRow(uuid.New(), "user@example.com", "User", models.RoleCustomer, &hashStr))

	_, err = svc.Authenticate(ctx, "user@example.com", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Authenticate_UnknownEmail(t *testing.T) {
	svc, mock := setupUserService(t)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("missing@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Authenticate(context.Background(), "missing@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_Authenticate_OAuthOnlyAccount(t *testing.T) {
	svc, mock := setupUserService(t)

	// A federated account has no password hash.
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("google@example.com").
		WillReturnRows(userRow(uuid.New(), "google@example.com", "G User", models.RoleCustomer, nil))

	_, err := svc.Authenticate(context.Background(), "google@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserService_FindOrCreateFromOAuth_CreateNew(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	info := &oauth.UserInfo{
		Email:     "new@example.com",
		Name:      "New User",
		AvatarURL: "https://example.com/avatar.png",
		ID:        "provider-123",
		Provider:  "google",
	}
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs(info.Email).
		WillReturnError(pgx.ErrNoRows)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(info.Email, info.Name, &info.AvatarURL, models.RoleCustomer, info.Provider, info.ID).
		WillReturnRows(userRow(userID, info.Email, info.Name, models.RoleCustomer, nil))

	user, err := svc.FindOrCreateFromOAuth(ctx, info)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_FindOrCreateFromOAuth_FindExisting(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	info := &oauth.UserInfo{
		Email:    "existing@example.com",
		Name:     "Existing User",
		ID:       "provider-456",
		Provider: "google",
	}
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs(info.Email).
		WillReturnRows(userRow(userID, info.Email, info.Name, models.RoleAgent, nil))

	user, err := svc.FindOrCreateFromOAuth(ctx, info)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	// The existing role survives a repeat federated sign-in.
	assert.Equal(t, models.RoleAgent, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetRoleByEmail(t *testing.T) {
	svc, mock := setupUserService(t)

	mock.ExpectQuery(`SELECT role FROM users WHERE email`).
		WithArgs("agent@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleAgent))

	role, err := svc.GetRoleByEmail(context.Background(), "agent@example.com")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAgent, role)
}

func TestUserService_GetRoleByEmail_Unknown(t *testing.T) {
	svc, mock := setupUserService(t)

	mock.ExpectQuery(`SELECT role FROM users WHERE email`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetRoleByEmail(context.Background(), "nobody@example.com")
	assert.Error(t, err)
}

func TestUserService_UpdateRole_Success(t *testing.T) {
	svc, mock := setupUserService(t)
	userID := uuid.New()

	mock.ExpectQuery(`UPDATE users SET role`).
		WithArgs(models.RoleAgent, userID).
		WillReturnRows(userRow(userID, "user@example.com", "User", models.RoleAgent, nil))

	user, err := svc.UpdateRole(context.Background(), userID, models.RoleAgent)

	require.NoError(t, err)
	assert.Equal(t, models.RoleAgent, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_UpdateRole_InvalidRole(t *testing.T) {
	svc, _ := setupUserService(t)

	_, err := svc.UpdateRole(context.Background(), uuid.New(), "superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUserService_UpdateRole_FailureLeavesRoleUnchanged(t *testing.T) {
	svc, mock := setupUserService(t)
	userID := uuid.New()

	mock.ExpectQuery(`UPDATE users SET role`).
		WithArgs(models.RoleAdmin, userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.UpdateRole(context.Background(), userID, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_Delete_Success(t *testing.T) {
	svc, mock := setupUserService(t)
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(context.Background(), userID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	userID := uuid.New()

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), userID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_ListByRole_Filtered(t *testing.T) {
	svc, mock := setupUserService(t)

	rows := pgxmock.NewRows(userCols)
	now := time.Now()
	for i, email := range []string{"a@example.com", "b@example.com"} {
		rows.AddRow(uuid.New(), email, "Agent", (*string)(nil), models.RoleAgent, (*string)(nil),
			"password", (*string)(nil), (*string)(nil), (*string)(nil), now.Add(time.Duration(i)), now)
	}

	mock.ExpectQuery(`SELECT .+ FROM users WHERE role`).
		WithArgs(models.RoleAgent).
		WillReturnRows(rows)

	users, err := svc.ListByRole(context.Background(), models.RoleAgent)

	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
