package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/oauth"
	"github.com/rafiul/lifesure-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, email, password, name string, photoURL *string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetRoleByEmail(ctx context.Context, email string) (string, error)
	UpdateProfile(ctx context.Context, email string, name *string, photoURL, nid, address *string) (*models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PolicyServiceInterface defines the methods used by handlers from PolicyService
type PolicyServiceInterface interface {
	List(ctx context.Context, filter services.PolicyFilter) (*services.PolicyPage, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error)
	Create(ctx context.Context, p *models.Policy) (*models.Policy, error)
	Update(ctx context.Context, id uuid.UUID, p *models.Policy) (*models.Policy, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementPurchaseCount(ctx context.Context, id uuid.UUID) error
}

// ApplicationServiceInterface defines the methods used by handlers from ApplicationService
type ApplicationServiceInterface interface {
	Submit(ctx context.Context, app *models.Application) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByApplicant(ctx context.Context, email string) ([]models.Application, error)
	ListByAgent(ctx context.Context, agentEmail string) ([]models.Application, error)
	ListAll(ctx context.Context) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, rejectionFeedback *string) (*models.Application, error)
	UpdateStatusAsAgent(ctx context.Context, id uuid.UUID, agentEmail, status string, rejectionFeedback *string) (*models.Application, error)
	AssignAgent(ctx context.Context, id, agentID uuid.UUID, agentName, agentEmail string) (*models.Application, error)
}

// BlogServiceInterface defines the methods used by handlers from BlogService
type BlogServiceInterface interface {
	List(ctx context.Context, authorEmail string) ([]models.Blog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	Create(ctx context.Context, title, content string, author *models.User) (*models.Blog, error)
	Update(ctx context.Context, id uuid.UUID, title, content, callerEmail string, isAdmin bool) (*models.Blog, error)
	Delete(ctx context.Context, id uuid.UUID, callerEmail string, isAdmin bool) error
}

// ClaimServiceInterface defines the methods used by handlers from ClaimService
type ClaimServiceInterface interface {
	Create(ctx context.Context, applicationID uuid.UUID, customerEmail, reason string, documentURL *string) (*models.Claim, error)
	List(ctx context.Context, customerEmail string) ([]models.Claim, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Claim, error)
}

// PaymentServiceInterface defines the methods used by handlers from PaymentService
type PaymentServiceInterface interface {
	CreateIntent(ctx context.Context, applicationID uuid.UUID, amountBDT float64) (*services.PaymentIntent, error)
	Confirm(ctx context.Context, applicationID uuid.UUID, customerEmail, policyTitle string, amountBDT float64, frequency, intentID string) (*models.Payment, error)
	List(ctx context.Context, customerEmail string) ([]models.Payment, error)
	Summary(ctx context.Context) (*models.PaymentSummary, error)
}

// ReviewServiceInterface defines the methods used by handlers from ReviewService
type ReviewServiceInterface interface {
	Create(ctx context.Context, userName, userEmail string, userPhoto *string, rating int, message, policyTitle string) (*models.Review, error)
	Latest(ctx context.Context, limit int) ([]models.Review, error)
}

// NewsletterServiceInterface defines the methods used by handlers from NewsletterService
type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, name, email string) (*models.NewsletterSubscriber, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, role string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	SendApplicationStatus(to, applicantName, policyTitle, status string, rejectionFeedback *string) error
}
