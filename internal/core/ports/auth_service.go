package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// AuthService implements credential verification and session issuance.
type AuthService interface {
	// Login verifies the credentials and returns a signed session token with
	// the user. Unknown email and wrong password both yield
	// domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// SeedAdmin creates the bootstrap admin account when the user table is
	// empty. Idempotent.
	SeedAdmin(ctx context.Context) error
}
