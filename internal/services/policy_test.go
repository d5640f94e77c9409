package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var policyCols = []string{
	"id", "title", "category", "description", "image_url", "min_age", "max_age",
	"min_coverage", "max_coverage", "duration_options", "base_premium_rate",
	"purchase_count", "created_at", "updated_at",
}

func setupPolicyService(t *testing.T) (*PolicyService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	db := &database.DB{Pool: mock}
	return NewPolicyService(db), mock
}

func policyRow(id uuid.UUID, title, category string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(policyCols).
		AddRow(id, title, category, "desc", (*string)(nil), 18, 65,
			500000.0, 5000000.0, "10,15,20", 0.04, 0, now, now)
}

func TestPolicyService_List_DefaultPagination(t *testing.T) {
	svc, mock := setupPolicyService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM policies`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(`FROM policies WHERE 1=1 ORDER BY created_at DESC LIMIT`).
		WithArgs(9, 0).
		WillReturnRows(policyRow(uuid.New(), "Term Life", "Term Life"))

	page, err := svc.List(context.Background(), PolicyFilter{})

	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 9, page.Limit)
	assert.Len(t, page.Data, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_List_CategoryAndSearch(t *testing.T) {
	svc, mock := setupPolicyService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM policies WHERE 1=1 AND category`).
		WithArgs("Senior", "plan").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`FROM policies WHERE 1=1 AND category = \$1 AND \(title ILIKE`).
		WithArgs("Senior", "plan", 9, 0).
		WillReturnRows(policyRow(uuid.New(), "Senior Plan", "Senior"))

	page, err := svc.List(context.Background(), PolicyFilter{Category: "Senior", Search: "plan"})

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_List_SortPopular(t *testing.T) {
	svc, mock := setupPolicyService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM policies`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	mock.ExpectQuery(`FROM policies WHERE 1=1 ORDER BY purchase_count DESC`).
		WithArgs(9, 0).
		WillReturnRows(policyRow(uuid.New(), "Popular", "Term Life"))

	_, err := svc.List(context.Background(), PolicyFilter{Sort: "popular"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_List_PageOffset(t *testing.T) {
	svc, mock := setupPolicyService(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM policies`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(20))

	mock.ExpectQuery(`FROM policies WHERE 1=1 ORDER BY created_at DESC LIMIT`).
		WithArgs(6, 6).
		WillReturnRows(policyRow(uuid.New(), "Term Life", "Term Life"))

	page, err := svc.List(context.Background(), PolicyFilter{Page: 2, Limit: 6})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupPolicyService(t)
	policyID := uuid.New()

	mock.ExpectQuery(`FROM policies WHERE id`).
		WithArgs(policyID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(context.Background(), policyID)
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestPolicyService_Create(t *testing.T) {
	svc, mock := setupPolicyService(t)
	policyID := uuid.New()

	p := &models.Policy{
		Title:           "New Policy",
		Category:        "Term Life",
		Description:     "desc",
		MinAge:          18,
		MaxAge:          65,
		MinCoverage:     500000,
		MaxCoverage:     5000000,
		DurationOptions: "10,15,20",
		BasePremiumRate: 0.04,
	}

	mock.ExpectQuery(`INSERT INTO policies`).
		WithArgs(p.Title, p.Category, p.Description, p.ImageURL, p.MinAge, p.MaxAge,
			p.MinCoverage, p.MaxCoverage, p.DurationOptions, p.BasePremiumRate).
		WillReturnRows(policyRow(policyID, p.Title, p.Category))

	created, err := svc.Create(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, policyID, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_IncrementPurchaseCount(t *testing.T) {
	svc, mock := setupPolicyService(t)
	policyID := uuid.New()

	mock.ExpectExec(`UPDATE policies SET purchase_count`).
		WithArgs(policyID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := svc.IncrementPurchaseCount(context.Background(), policyID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_Delete_NotFound(t *testing.T) {
	svc, mock := setupPolicyService(t)
	policyID := uuid.New()

	mock.ExpectExec(`DELETE FROM policies`).
		WithArgs(policyID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), policyID)
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}
