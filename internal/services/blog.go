package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
	ErrNotAuthor    = errors.New("not the author of this blog")
)

const blogColumns = `id, title, content, author_id, author_name, author_email, author_photo, total_visits, created_at, updated_at`

type BlogService struct {
	db *database.DB
}

func NewBlogService(db *database.DB) *BlogService {
	return &BlogService{db: db}
}

func (s *BlogService) List(ctx context.Context, authorEmail string) ([]models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs ORDER BY created_at DESC`
	args := []any{}
	if authorEmail != "" {
		query = `SELECT ` + blogColumns + ` FROM blogs WHERE author_email = $1 ORDER BY created_at DESC`
		args = append(args, authorEmail)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []models.Blog{}
	for rows.Next() {
		var b models.Blog
		if err := rows.Scan(blogFields(&b)...); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// GetByID also counts the visit.
func (s *BlogService) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var b models.Blog
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE blogs SET total_visits = total_visits + 1
		WHERE id = $1
		RETURNING `+blogColumns+`
	`, id).Scan(blogFields(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BlogService) Create(ctx context.Context, title, content string, author *models.User) (*models.Blog, error) {
	var b models.Blog
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO blogs (title, content, author_id, author_name, author_email, author_photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+blogColumns+`
	`, title, content, author.ID, author.Name, author.Email, author.PhotoURL).Scan(blogFields(&b)...)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update is author-scoped unless the caller is an admin.
func (s *BlogService) Update(ctx context.Context, id uuid.UUID, title, content, callerEmail string, isAdmin bool) (*models.Blog, error) {
	if err := s.checkAuthor(ctx, id, callerEmail, isAdmin); err != nil {
		return nil, err
	}

	var b models.Blog
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE blogs SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+blogColumns+`
	`, title, content, id).Scan(blogFields(&b)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BlogService) Delete(ctx context.Context, id uuid.UUID, callerEmail string, isAdmin bool) error {
	if err := s.checkAuthor(ctx, id, callerEmail, isAdmin); err != nil {
		return err
	}
	_, err := s.db.Pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	return err
}

func (s *BlogService) checkAuthor(ctx context.Context, id uuid.UUID, callerEmail string, isAdmin bool) error {
	var authorEmail string
	err := s.db.Pool.QueryRow(ctx, `SELECT author_email FROM blogs WHERE id = $1`, id).Scan(&authorEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrBlogNotFound
		}
		return err
	}
	if !isAdmin && authorEmail != callerEmail {
		return ErrNotAuthor
	}
	return nil
}

func blogFields(b *models.Blog) []any {
	return []any{
		&b.ID, &b.Title, &b.Content, &b.AuthorID, &b.AuthorName,
		&b.AuthorEmail, &b.AuthorPhoto, &b.TotalVisits, &b.CreatedAt, &b.UpdatedAt,
	}
}
