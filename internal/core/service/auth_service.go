package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/pkg/metrics"
)

const msgInvalidCredentials = "Unable to log in with provided credentials."

// AuthService exchanges credentials for tokens and resolves tokens back to
// callers.
type AuthService struct {
	users ports.UserRepository
	creds ports.CredentialStore
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, creds ports.CredentialStore, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, creds: creds, log: log}
}

// Login checks an email/password pair and returns a token. Every rejection
// is a *domain.ValidationError: blank fields are reported per field, and an
// unknown email, a wrong password and an inactive account all produce the
// same non-field message.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	ve := domain.NewValidationError()
	if strings.TrimSpace(email) == "" {
		ve.Add("email", "This field may not be blank.")
	}
	if password == "" {
		ve.Add("password", "This field may not be blank.")
	}
	if err := ve.OrNil(); err != nil {
		metrics.TokenExchangesTotal.WithLabelValues("rejected").Inc()
		return "", err
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "", s.reject(email)
	case err != nil:
		return "", fmt.Errorf("login: %w", err)
	}
	if !user.IsActive || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", s.reject(email)
	}

	token, err := s.creds.Issue(ctx, user)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}
	metrics.TokenExchangesTotal.WithLabelValues("issued").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("token issued")
	return token, nil
}

// Authenticate resolves a token to the caller it belongs to. Tokens of
// deleted or inactive users are invalid.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Caller, error) {
	id, err := s.creds.Resolve(ctx, token)
	if err != nil {
		return domain.Anonymous, err
	}
	user, err := s.users.FindByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.Anonymous, domain.ErrInvalidToken
	case err != nil:
		return domain.Anonymous, fmt.Errorf("authenticate: %w", err)
	}
	if !user.IsActive {
		return domain.Anonymous, domain.ErrInvalidToken
	}
	return domain.Caller{UserID: user.ID, Email: user.Email}, nil
}

func (s *AuthService) reject(email string) error {
	metrics.TokenExchangesTotal.WithLabelValues("rejected").Inc()
	s.log.Info().Str("email", domain.NormalizeEmail(email)).Msg("credential exchange rejected")
	return domain.FieldError(domain.NonFieldErrors, msgInvalidCredentials)
}
