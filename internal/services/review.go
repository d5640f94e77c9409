package services

import (
	"context"
	"errors"

	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const reviewColumns = `id, user_name, user_email, user_photo, rating, message, policy_title, created_at`

type ReviewService struct {
	db *database.DB
}

func NewReviewService(db *database.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Create(ctx context.Context, userName, userEmail string, userPhoto *string, rating int, message, policyTitle string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var r models.Review
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO reviews (user_name, user_email, user_photo, rating, message, policy_title)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+reviewColumns+`
	`, userName, userEmail, userPhoto, rating, message, policyTitle).Scan(reviewFields(&r)...)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ReviewService) Latest(ctx context.Context, limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+reviewColumns+` FROM reviews
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(reviewFields(&r)...); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func reviewFields(r *models.Review) []any {
	return []any{
		&r.ID, &r.UserName, &r.UserEmail, &r.UserPhoto,
		&r.Rating, &r.Message, &r.PolicyTitle, &r.CreatedAt,
	}
}
