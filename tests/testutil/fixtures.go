package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/rafiul/lifesure-api/internal/database"
	"github.com/rafiul/lifesure-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		Name:     fmt.Sprintf("Test User %d", f.counter),
		Role:     models.RoleCustomer,
		Provider: "password",
	}

	for _, opt := range opts {
		opt(user)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}
	hashStr := string(hash)

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, photo_url, role, password_hash, provider)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, user.Email, user.Name, user.PhotoURL, user.Role, hashStr, user.Provider).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's name
func WithName(name string) UserOption {
	return func(u *models.User) {
		u.Name = name
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// CreatePolicy creates a test policy with default values
func (f *Fixtures) CreatePolicy(t *testing.T, opts ...PolicyOption) *models.Policy {
	t.Helper()
	f.counter++

	policy := &models.Policy{
		Title:           fmt.Sprintf("Term Life %d", f.counter),
		Category:        "Term Life",
		Description:     "Coverage for a fixed term.",
		MinAge:          18,
		MaxAge:          65,
		MinCoverage:     500000,
		MaxCoverage:     5000000,
		DurationOptions: "10,15,20",
		BasePremiumRate: 0.04,
	}

	for _, opt := range opts {
		opt(policy)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO policies (title, category, description, image_url, min_age, max_age,
			min_coverage, max_coverage, duration_options, base_premium_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, purchase_count, created_at, updated_at
	`, policy.Title, policy.Category, policy.Description, policy.ImageURL,
		policy.MinAge, policy.MaxAge, policy.MinCoverage, policy.MaxCoverage,
		policy.DurationOptions, policy.BasePremiumRate).Scan(
		&policy.ID, &policy.PurchaseCount, &policy.CreatedAt, &policy.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create policy: %v", err)
	}

	return policy
}

// PolicyOption configures a test policy
type PolicyOption func(*models.Policy)

// WithCategory sets the policy category
func WithCategory(category string) PolicyOption {
	return func(p *models.Policy) {
		p.Category = category
	}
}

// WithTitle sets the policy title
func WithTitle(title string) PolicyOption {
	return func(p *models.Policy) {
		p.Title = title
	}
}

// CreateApplication creates a test application for the given policy and applicant
func (f *Fixtures) CreateApplication(t *testing.T, policy *models.Policy, applicant *models.User, opts ...ApplicationOption) *models.Application {
	t.Helper()

	app := &models.Application{
		PolicyID:         policy.ID,
		PolicyTitle:      policy.Title,
		ApplicantEmail:   applicant.Email,
		ApplicantName:    applicant.Name,
		Address:          "123 Test Street",
		NID:              "1234567890",
		Phone:            "01700000000",
		NomineeName:      "Test Nominee",
		NomineeRelation:  "spouse",
		HealthConditions: []string{},
		Status:           models.StatusPending,
		CoverageAmount:   1000000,
		DurationYears:    10,
		PremiumFrequency: models.FrequencyMonthly,
		PremiumAmount:    333.33,
	}

	for _, opt := range opts {
		opt(app)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO applications (policy_id, policy_title, applicant_email, applicant_name,
			address, nid, phone, nominee_name, nominee_relation, health_conditions, status,
			coverage_amount, duration_years, smoker, premium_frequency, premium_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, app.PolicyID, app.PolicyTitle, app.ApplicantEmail, app.ApplicantName,
		app.Address, app.NID, app.Phone, app.NomineeName, app.NomineeRelation,
		app.HealthConditions, app.Status, app.CoverageAmount, app.DurationYears,
		app.Smoker, app.PremiumFrequency, app.PremiumAmount).Scan(
		&app.ID, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create application: %v", err)
	}

	return app
}

// ApplicationOption configures a test application
type ApplicationOption func(*models.Application)

// WithStatus sets the application status
func WithStatus(status string) ApplicationOption {
	return func(a *models.Application) {
		a.Status = status
	}
}

// WithAgent assigns an agent to the application
func WithAgent(agent *models.User) ApplicationOption {
	return func(a *models.Application) {
		a.AgentID = &agent.ID
		a.AgentName = &agent.Name
		a.AgentEmail = &agent.Email
	}
}

// CreateBlog creates a test blog post by the given author
func (f *Fixtures) CreateBlog(t *testing.T, author *models.User) *models.Blog {
	t.Helper()
	f.counter++

	blog := &models.Blog{
		Title:       fmt.Sprintf("Blog Post %d", f.counter),
		Content:     "Why term life insurance matters.",
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorEmail: author.Email,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO blogs (title, content, author_id, author_name, author_email, author_photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, total_visits, created_at, updated_at
	`, blog.Title, blog.Content, blog.AuthorID, blog.AuthorName, blog.AuthorEmail, author.PhotoURL).Scan(
		&blog.ID, &blog.TotalVisits, &blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create blog: %v", err)
	}

	return blog
}
