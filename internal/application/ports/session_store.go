package ports

import (
	"context"
	"time"
)

// SessionStore holds token -> owner-id bindings with per-key expiry.
// Implementations namespace the keys; callers pass bare tokens.
type SessionStore interface {
	Set(ctx context.Context, token, ownerID string, ttl time.Duration) error
	Get(ctx context.Context, token string) (string, error)
	Del(ctx context.Context, token string) error
	Ping(ctx context.Context) error
}
