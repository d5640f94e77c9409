package services

import (
	"context"
	"errors"

	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var ErrAlreadySubscribed = errors.New("email already subscribed")

type NewsletterService struct {
	db *database.DB
}

func NewNewsletterService(db *database.DB) *NewsletterService {
	return &NewsletterService{db: db}
}

func (s *NewsletterService) Subscribe(ctx context.Context, name, email string) (*models.NewsletterSubscriber, error) {
	var sub models.NewsletterSubscriber
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO newsletter_subscribers (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at
	`, name, email).Scan(&sub.ID, &sub.Name, &sub.Email, &sub.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return &sub, nil
}
