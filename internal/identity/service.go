package identity

import (
    "context"
    "errors"
    "strings"
    "time"

    "github.com/go-playground/validator/v10"
    "github.com/google/uuid"
    "golang.org/x/crypto/bcrypt"

    "github.com/congo-pay/onboarding/internal/onboarding"
)

const minPasswordLength = 6

// Service is the identity provider behind the onboarding flows.
type Service struct {
    repo     Repository
    validate *validator.Validate
    cost     int
}

// NewService creates a new identity service.
func NewService(repo Repository) *Service {
    return &Service{repo: repo, validate: validator.New(), cost: bcrypt.DefaultCost}
}

var _ onboarding.AuthProvider = (*Service)(nil)

// normalizeEmail folds addresses so that lookups and the uniqueness rule
// ignore letter case and surrounding spaces.
func normalizeEmail(email string) string {
    return strings.ToLower(strings.TrimSpace(email))
}

// CreateAccount registers a new account and stores a hashed password.
func (s *Service) CreateAccount(ctx context.Context, email, password string) (onboarding.Account, error) {
    email = normalizeEmail(email)
    if err := s.validate.Var(email, "required,email"); err != nil {
        return "", ErrInvalidEmail
    }
    if len(password) < minPasswordLength {
        return "", ErrWeakPassword
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
    if err != nil {
        return "", err
    }

    account := Account{
        ID:           uuid.New().String(),
        Email:        email,
        PasswordHash: hash,
        CreatedAt:    time.Now().UTC(),
    }

    if err := s.repo.Create(ctx, account); err != nil {
        return "", err
    }

    return onboarding.Account(account.ID), nil
}

// Authenticate verifies an email and password pair.
func (s *Service) Authenticate(ctx context.Context, email, password string) (onboarding.Account, error) {
    account, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
    if err != nil {
        if errors.Is(err, ErrAccountNotFound) {
            return "", ErrInvalidCredentials
        }
        return "", err
    }

    if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
        return "", ErrInvalidCredentials
    }

    return onboarding.Account(account.ID), nil
}
