package ports

import (
	"context"

	"github.com/zebrands/catalog-api/internal/core/domain"
)

// CredentialStore issues and resolves bearer tokens. Tokens are opaque to
// the rest of the system.
type CredentialStore interface {
	// Issue returns a token for the user, reusing an existing one when the
	// backend keeps tokens.
	Issue(ctx context.Context, user *domain.User) (string, error)
	// Resolve maps a token to the user id it was issued for. Unknown or
	// expired tokens return domain.ErrInvalidToken.
	Resolve(ctx context.Context, token string) (int64, error)
	// Revoke drops any token issued for the user.
	Revoke(ctx context.Context, userID int64) error
}
