package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"file-manager-api/internal/domain/user"
)

// Querier is the subset of pgxpool.Pool the repository needs; tests
// substitute a pgxmock pool.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db Querier
}

func NewRepository(db Querier) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, SelectUserByEmail, email).Scan(
		&u.ID,
		&u.UUID,
		&u.Email,
		&u.PasswordHash,

		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), err
}

func (r *Repository) CountUsers(ctx context.Context) (uint64, error) {
	var n uint64
	if err := r.db.QueryRow(ctx, CountUsers).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
