package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	customerRepo "autoserve/database/repository/customer"
	"autoserve/models"
	"autoserve/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued session token stays valid.
const tokenTTL = 72 * time.Hour

var (
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = errors.New("email already registered")
)

// CustomerService manages customer accounts and session tokens.
type CustomerService interface {
	Register(ctx context.Context, name, email, phone, password string) (*models.Customer, string, error)
	Authenticate(ctx context.Context, email, password string) (*models.Customer, string, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	RevokeToken(ctx context.Context, token string) error
	// TokenActive reports whether a token is still registered in the auth
	// cache (i.e. has not been revoked).
	TokenActive(ctx context.Context, token string) bool
}

// DefaultCustomerService implements CustomerService.
type DefaultCustomerService struct {
	Repo customerRepo.CustomerRepository
}

// Register creates an account and returns it with a fresh session token.
func (s *DefaultCustomerService) Register(ctx context.Context, name, email, phone, password string) (*models.Customer, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || password == "" {
		return nil, "", errors.New("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	cust := &models.Customer{
		ID:             uuid.New().String(),
		CustomerNumber: fmt.Sprintf("CU-%s", strings.ToUpper(uuid.New().String()[:8])),
		Name:           name,
		Phone:          phone,
		Email:          email,
		PasswordHash:   string(hash),
	}
	if err := s.Repo.Create(ctx, cust); err != nil {
		if errors.Is(err, customerRepo.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.issueToken(ctx, cust)
	if err != nil {
		return nil, "", err
	}
	return cust, token, nil
}

// Authenticate verifies credentials and returns the account with a fresh
// session token.
func (s *DefaultCustomerService) Authenticate(ctx context.Context, email, password string) (*models.Customer, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	cust, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, customerRepo.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(cust.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, cust)
	if err != nil {
		return nil, "", err
	}
	return cust, token, nil
}

func (s *DefaultCustomerService) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return s.Repo.GetByID(ctx, id)
}

// RevokeToken removes the token from the auth cache so it stops validating
// before its JWT expiry.
func (s *DefaultCustomerService) RevokeToken(ctx context.Context, token string) error {
	return utils.GetAuthCacheClient().Del(ctx, utils.HashToken(token)).Err()
}

func (s *DefaultCustomerService) TokenActive(ctx context.Context, token string) bool {
	n, err := utils.GetAuthCacheClient().Exists(ctx, utils.HashToken(token)).Result()
	return err == nil && n > 0
}

// issueToken signs a JWT and registers its hash in the auth cache.
func (s *DefaultCustomerService) issueToken(ctx context.Context, cust *models.Customer) (string, error) {
	token, err := utils.GenerateToken(cust.ID, cust.Email, tokenTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	if err := utils.GetAuthCacheClient().Set(ctx, utils.HashToken(token), cust.ID, tokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to register session token: %w", err)
	}
	return token, nil
}
