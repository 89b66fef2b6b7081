package user

import (
	"context"
)

type Repository interface {
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CountUsers(ctx context.Context) (uint64, error)
}
