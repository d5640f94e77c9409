package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/oauth"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUserNotFound       = errors.New("user not found")
)

const userColumns = `id, email, name, photo_url, role, password_hash, provider, provider_id, nid, address, created_at, updated_at`

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// Register creates a password credential and a user record with the
// default customer role. A duplicate email reports ErrEmailAlreadyInUse
// so callers can surface it as an informational conflict.
func (s *UserService) Register(ctx context.Context, email, password, name string, photoURL *string) (*models.User, error) {
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, photo_url, role, password_hash, provider)
		VALUES ($1, $2, $3, $4, $5, 'password')
		RETURNING `+userColumns+`
	`, email, name, photoURL, models.RoleCustomer, string(passwordHash)).Scan(userFields(&user)...)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyInUse
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies a password credential.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindOrCreateFromOAuth upserts a user record from a federated sign-in.
// An existing record is treated as success, never a conflict.
func (s *UserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, info.Email).Scan(userFields(&user)...)

	if err == nil {
		if user.Name != info.Name || (user.PhotoURL == nil && info.AvatarURL != "") {
			_, _ = s.db.Pool.Exec(ctx, `
				UPDATE users SET name = $1, photo_url = COALESCE(photo_url, $2), updated_at = NOW()
				WHERE id = $3
			`, info.Name, nullableString(info.AvatarURL), user.ID)
			user.Name = info.Name
			if user.PhotoURL == nil && info.AvatarURL != "" {
				user.PhotoURL = &info.AvatarURL
			}
		}
		return &user, nil
	}

	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, photo_url, role, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, info.Email, info.Name, nullableString(info.AvatarURL), models.RoleCustomer, info.Provider, info.ID).Scan(userFields(&user)...)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id).Scan(userFields(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, email).Scan(userFields(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetRoleByEmail is the single role lookup used by authorization checks.
func (s *UserService) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	var role string
	err := s.db.Pool.QueryRow(ctx, `SELECT role FROM users WHERE email = $1`, email).Scan(&role)
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, name *string, photoURL, nid, address *string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET
			name = COALESCE($1, name),
			photo_url = COALESCE($2, photo_url),
			nid = COALESCE($3, nid),
			address = COALESCE($4, address),
			updated_at = NOW()
		WHERE email = $5
		RETURNING `+userColumns+`
	`, name, photoURL, nid, address, email).Scan(userFields(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	args := []any{}
	if role != "" {
		query = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`
		args = append(args, role)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(userFields(&u)...); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns+`
	`, role, id).Scan(userFields(&user)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func userFields(u *models.User) []any {
	return []any{
		&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.PasswordHash,
		&u.Provider, &u.ProviderID, &u.NID, &u.Address, &u.CreatedAt, &u.UpdatedAt,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
