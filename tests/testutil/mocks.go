package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rafiul/lifesure-api/internal/models"
	"github.com/rafiul/lifesure-api/internal/oauth"
	"github.com/rafiul/lifesure-api/internal/services"
	"github.com/stretchr/testify/mock"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, email, password, name string, photoURL *string) (*models.User, error) {
	args := m.Called(ctx, email, password, name, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetRoleByEmail(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, email string, name *string, photoURL, nid, address *string) (*models.User, error) {
	args := m.Called(ctx, email, name, photoURL, nid, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPolicyService mocks the PolicyService
type MockPolicyService struct {
	mock.Mock
}

func (m *MockPolicyService) List(ctx context.Context, filter services.PolicyFilter) (*services.PolicyPage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PolicyPage), args.Error(1)
}

func (m *MockPolicyService) GetByID(ctx context.Context, id uuid.UUID) (*models.Policy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Policy), args.Error(1)
}

func (m *MockPolicyService) Create(ctx context.Context, p *models.Policy) (*models.Policy, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Policy), args.Error(1)
}

func (m *MockPolicyService) Update(ctx context.Context, id uuid.UUID, p *models.Policy) (*models.Policy, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Policy), args.Error(1)
}

func (m *MockPolicyService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPolicyService) IncrementPurchaseCount(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockApplicationService mocks the ApplicationService
type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, app *models.Application) (uuid.UUID, error) {
	args := m.Called(ctx, app)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockApplicationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) ListByApplicant(ctx context.Context, email string) ([]models.Application, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationService) ListByAgent(ctx context.Context, agentEmail string) ([]models.Application, error) {
	args := m.Called(ctx, agentEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationService) ListAll(ctx context.Context) ([]models.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatus(ctx context.Context, id uuid.UUID, status string, rejectionFeedback *string) (*models.Application, error) {
	args := m.Called(ctx, id, status, rejectionFeedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) UpdateStatusAsAgent(ctx context.Context, id uuid.UUID, agentEmail, status string, rejectionFeedback *string) (*models.Application, error) {
	args := m.Called(ctx, id, agentEmail, status, rejectionFeedback)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationService) AssignAgent(ctx context.Context, id, agentID uuid.UUID, agentName, agentEmail string) (*models.Application, error) {
	args := m.Called(ctx, id, agentID, agentName, agentEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

// MockBlogService mocks the BlogService
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) List(ctx context.Context, authorEmail string) ([]models.Blog, error) {
	args := m.Called(ctx, authorEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Blog), args.Error(1)
}

func (m *MockBlogService) GetByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) Create(ctx context.Context, title, content string, author *models.User) (*models.Blog, error) {
	args := m.Called(ctx, title, content, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) Update(ctx context.Context, id uuid.UUID, title, content, callerEmail string, isAdmin bool) (*models.Blog, error) {
	args := m.Called(ctx, id, title, content, callerEmail, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogService) Delete(ctx context.Context, id uuid.UUID, callerEmail string, isAdmin bool) error {
	args := m.Called(ctx, id, callerEmail, isAdmin)
	return args.Error(0)
}

// MockClaimService mocks the ClaimService
type MockClaimService struct {
	mock.Mock
}

func (m *MockClaimService) Create(ctx context.Context, applicationID uuid.UUID, customerEmail, reason string, documentURL *string) (*models.Claim, error) {
	args := m.Called(ctx, applicationID, customerEmail, reason, documentURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

func (m *MockClaimService) List(ctx context.Context, customerEmail string) ([]models.Claim, error) {
	args := m.Called(ctx, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Claim), args.Error(1)
}

func (m *MockClaimService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Claim, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claim), args.Error(1)
}

// MockPaymentService mocks the PaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateIntent(ctx context.Context, applicationID uuid.UUID, amountBDT float64) (*services.PaymentIntent, error) {
	args := m.Called(ctx, applicationID, amountBDT)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentIntent), args.Error(1)
}

func (m *MockPaymentService) Confirm(ctx context.Context, applicationID uuid.UUID, customerEmail, policyTitle string, amountBDT float64, frequency, intentID string) (*models.Payment, error) {
	args := m.Called(ctx, applicationID, customerEmail, policyTitle, amountBDT, frequency, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentService) List(ctx context.Context, customerEmail string) ([]models.Payment, error) {
	args := m.Called(ctx, customerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentService) Summary(ctx context.Context) (*models.PaymentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentSummary), args.Error(1)
}

// MockReviewService mocks the ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, userName, userEmail string, userPhoto *string, rating int, message, policyTitle string) (*models.Review, error) {
	args := m.Called(ctx, userName, userEmail, userPhoto, rating, message, policyTitle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Latest(ctx context.Context, limit int) ([]models.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockNewsletterService mocks the NewsletterService
type MockNewsletterService struct {
	mock.Mock
}

func (m *MockNewsletterService) Subscribe(ctx context.Context, name, email string) (*models.NewsletterSubscriber, error) {
	args := m.Called(ctx, name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NewsletterSubscriber), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApplicationStatus(to, applicantName, policyTitle, status string, rejectionFeedback *string) error {
	args := m.Called(to, applicantName, policyTitle, status, rejectionFeedback)
	return args.Error(0)
}
