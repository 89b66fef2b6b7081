package ports

import (
	"context"

	"file-manager-api/internal/domain/user"
)

type AuthService interface {
	// Authenticate exchanges a Basic credentials header for a fresh
	// session token.
	Authenticate(ctx context.Context, credentials string) (string, error)
	Validate(ctx context.Context, token string) (user.UUID, error)
	Revoke(ctx context.Context, token string) error
}
