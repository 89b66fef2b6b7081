package ports

import "context"

// ContentStore is a write-once blob area. Save generates a fresh opaque
// path per call so concurrent writers never collide; SaveAt exists for
// derivative artifacts whose path is derived deterministically and may
// be overwritten in place.
type ContentStore interface {
	Save(ctx context.Context, data []byte) (string, error)
	SaveAt(ctx context.Context, path string, data []byte) error
	Load(ctx context.Context, path string) ([]byte, error)
}
