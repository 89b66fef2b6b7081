package ports

import "context"

// Pinger is the liveness probe the status endpoint runs against each
// backing store. *pgxpool.Pool satisfies it directly.
type Pinger interface {
	Ping(ctx context.Context) error
}
