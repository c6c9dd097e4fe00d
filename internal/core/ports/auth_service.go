package ports

import (
	"context"

	"github.com/cliplink/affiliate-system/internal/core/domain"
)

type AuthService interface {
	// Register creates a user account and returns it together with a fresh
	// bearer token bound to it.
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)

	// Authenticate verifies an email/password pair and returns a bearer
	// token plus the matching user. Unknown email and wrong password are
	// indistinguishable to the caller.
	Authenticate(ctx context.Context, email, password string) (string, *domain.User, error)

	// VerifyToken validates a bearer token and resolves the CURRENT stored
	// user record it refers to. Role and reward changes made after the token
	// was issued are always visible.
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}
