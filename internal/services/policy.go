package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
)

var ErrPolicyNotFound = errors.New("policy not found")

const policyColumns = `id, title, category, description, image_url, min_age, max_age, min_coverage, max_coverage, duration_options, base_premium_rate, purchase_count, created_at, updated_at`

type PolicyService struct {
	db *database.DB
}

func NewPolicyService(db *database.DB) *PolicyService {
	return &PolicyService{db: db}
}

type PolicyFilter struct {
	Page     int
	Limit    int
	Category string
	Search   string
	Sort     string
}

type PolicyPage struct {
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Data  []models.Policy `json:"data"`
}

func (s *PolicyService) List(ctx context.Context, filter PolicyFilter) (*PolicyPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 50 {
		filter.Limit = 9
	}

	where := ` WHERE 1=1`
	args := []any{}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(` AND category = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		where += fmt.Sprintf(` AND (title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')`, len(args), len(args))
	}

	var total int
	if err := s.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM policies`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	orderBy := ` ORDER BY created_at DESC`
	switch filter.Sort {
	case "popular":
		orderBy = ` ORDER BY purchase_count DESC`
	case "premium_asc":
		orderBy = ` ORDER BY base_premium_rate ASC`
	case "premium_desc":
		orderBy = ` ORDER BY base_premium_rate DESC`
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + policyColumns + ` FROM policies` + where + orderBy +
		fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := []models.Policy{}
	for rows.Next() {
		var p models.Policy
		if err := rows.Scan(policyFields(&p)...); err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &PolicyPage{
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Data:  policies,
	}, nil
}

func (s *PolicyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	var p models.Policy
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+policyColumns+` FROM policies WHERE id = $1
	`, id).Scan(policyFields(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PolicyService) Create(ctx context.Context, p *models.Policy) (*models.Policy, error) {
	var created models.Policy
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO policies (title, category, description, image_url, min_age, max_age, min_coverage, max_coverage, duration_options, base_premium_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+policyColumns+`
	`, p.Title, p.Category, p.Description, p.ImageURL, p.MinAge, p.MaxAge,
		p.MinCoverage, p.MaxCoverage, p.DurationOptions, p.BasePremiumRate,
	).Scan(policyFields(&created)...)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *PolicyService) Update(ctx context.Context, id uuid.UUID, p *models.Policy) (*models.Policy, error) {
	var updated models.Policy
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE policies SET
			title = $1, category = $2, description = $3, image_url = $4,
			min_age = $5, max_age = $6, min_coverage = $7, max_coverage = $8,
			duration_options = $9, base_premium_rate = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING `+policyColumns+`
	`, p.Title, p.Category, p.Description, p.ImageURL, p.MinAge, p.MaxAge,
		p.MinCoverage, p.MaxCoverage, p.DurationOptions, p.BasePremiumRate, id,
	).Scan(policyFields(&updated)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPolicyNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *PolicyService) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPolicyNotFound
	}
	return nil
}

// IncrementPurchaseCount backs the popular-policies ordering. Called
// when an application is approved.
func (s *PolicyService) IncrementPurchaseCount(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		UPDATE policies SET purchase_count = purchase_count + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	return err
}

func policyFields(p *models.Policy) []any {
	return []any{
		&p.ID, &p.Title, &p.Category, &p.Description, &p.ImageURL,
		&p.MinAge, &p.MaxAge, &p.MinCoverage, &p.MaxCoverage,
		&p.DurationOptions, &p.BasePremiumRate, &p.PurchaseCount,
		&p.CreatedAt, &p.UpdatedAt,
	}
}
