package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/core/resource"
)

// UserController is the resource controller for users.
type UserController = resource.Controller[domain.User, domain.UserFields]

// UserService is the user controller plus the superuser bootstrap path.
// Registration goes through Create and requires an authenticated caller.
type UserService struct {
	*UserController

	repo      ports.UserRepository
	validator resource.Validator[domain.User, domain.UserFields]
	creds     ports.CredentialStore
	log       zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	validator resource.Validator[domain.User, domain.UserFields],
	creds ports.CredentialStore,
	log zerolog.Logger,
) *UserService {
	s := &UserService{repo: repo, validator: validator, creds: creds, log: log}
	s.UserController = resource.New(resource.Config[domain.User, domain.UserFields]{
		Resource:    "user",
		Store:       repo,
		Validator:   validator,
		Policy:      resource.Private(),
		Hooks:       resource.Hooks[domain.User]{AfterDelete: s.revokeToken},
		UniqueField: "email",
		Logger:      log,
	})
	return s
}

// EnsureSuperuser creates a staff superuser unless a user with the email
// already exists. It reports whether a user was created. The account is
// validated like any other user, so the email must be organizational.
func (s *UserService) EnsureSuperuser(ctx context.Context, email, password, name string) (*domain.User, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("ensure superuser: %w", err)
	}

	u, err := s.validator.Validate(ctx, domain.UserFields{
		Email:    &email,
		Name:     &name,
		Password: &password,
	}, nil, resource.FullReplace)
	if err != nil {
		return nil, false, fmt.Errorf("ensure superuser: %w", err)
	}
	u.IsStaff = true
	u.IsSuperuser = true

	created, err := s.repo.Insert(ctx, u)
	if err != nil {
		return nil, false, fmt.Errorf("ensure superuser: %w", err)
	}
	s.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("superuser created")
	return created, true, nil
}

// revokeToken drops the deleted user's token. The user row is already gone,
// and tokens of missing users no longer authenticate, so a failure here is
// only logged.
func (s *UserService) revokeToken(ctx context.Context, id int64) {
	if err := s.creds.Revoke(ctx, id); err != nil {
		s.log.Warn().Err(err).Int64("user_id", id).Msg("failed to revoke token of deleted user")
	}
}
