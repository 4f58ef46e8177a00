package validation

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/zebrands/catalog-api/internal/core/domain"
	"github.com/zebrands/catalog-api/internal/core/ports"
	"github.com/zebrands/catalog-api/internal/core/resource"
)

const (
	maxPasswordBytes   = 72
	msgPasswordTooLong = "Ensure this field has no more than 72 bytes."
)

// UserRules validates user field sets. Passwords are hashed here, so the
// plaintext never leaves the validation step.
type UserRules struct {
	v          *Validator
	repo       ports.UserRepository
	bcryptCost int
}

func NewUserRules(v *Validator, repo ports.UserRepository, bcryptCost int) *UserRules {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserRules{v: v, repo: repo, bcryptCost: bcryptCost}
}

// Validate implements resource.Validator. On create (current == nil) a
// password is mandatory; on update an absent password keeps the stored hash.
// New users start active.
func (r *UserRules) Validate(ctx context.Context, f domain.UserFields, current *domain.User, mode resource.Mode) (*domain.User, error) {
	if mode == resource.PartialUpdate && f.IsEmpty() {
		return nil, domain.FieldError(domain.NonFieldErrors, msgNoFields)
	}

	next := domain.User{IsActive: true}
	if current != nil {
		next = *current
	}
	full := mode == resource.FullReplace
	ve := domain.NewValidationError()

	if present(ve, "email", f.Email, full) {
		email := domain.NormalizeEmail(*f.Email)
		if r.v.field(ve, "email", email, "required,max=100,orgemail") {
			next.Email = email
		}
	}
	if present(ve, "name", f.Name, full) {
		if r.v.field(ve, "name", *f.Name, "required,max=225") {
			next.Name = *f.Name
		}
	}
	if f.IsActive != nil {
		next.IsActive = *f.IsActive
	}

	var password string
	if present(ve, "password", f.Password, current == nil) {
		// bcrypt's limit is in bytes, not characters.
		switch {
		case !r.v.field(ve, "password", *f.Password, "required"):
		case len(*f.Password) > maxPasswordBytes:
			ve.Add("password", msgPasswordTooLong)
		default:
			password = *f.Password
		}
	}

	if f.Email != nil && !ve.Has("email") {
		existing, err := r.repo.FindByEmail(ctx, next.Email)
		switch {
		case errors.Is(err, domain.ErrNotFound):
		case err != nil:
			return nil, fmt.Errorf("check email: %w", err)
		case current == nil || existing.ID != current.ID:
			ve.Add("email", "user with this email already exists.")
		}
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.FieldError("password", msgPasswordTooLong)
		}
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		next.PasswordHash = string(hash)
	}
	return &next, nil
}
