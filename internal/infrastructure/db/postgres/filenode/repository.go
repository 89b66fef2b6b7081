package filenode

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/domain/user"
)

// Querier is the subset of pgxpool.Pool the repository needs; tests
// substitute a pgxmock pool.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db Querier
}

func NewRepository(db Querier) filenode.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateNode(ctx context.Context, req *filenode.FileNode) (*filenode.FileNode, error) {
	var parent *uuid.UUID
	if !req.Parent.IsRoot() {
		p := req.Parent.NodeUUID()
		parent = &p
	}
	var storagePath *string
	if req.StoragePath != "" {
		storagePath = &req.StoragePath
	}

	n := new(FileNode)
	err := r.db.QueryRow(
		ctx,
		InsertNode,
		req.OwnerUUID, req.Name, string(req.Kind), req.IsPublic, parent, storagePath,
	).Scan(
		&n.ID,
		&n.UUID,
		&n.OwnerUUID,
		&n.Name,
		&n.NodeType,
		&n.IsPublic,
		&n.ParentUUID,
		&n.StoragePath,

		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(n), err
}

func (r *Repository) FetchByUUID(ctx context.Context, id filenode.UUID) (*filenode.FileNode, error) {
	return r.fetchOne(ctx, SelectNodeByUUID, id)
}

func (r *Repository) FetchOwned(ctx context.Context, id filenode.UUID, owner user.UUID) (*filenode.FileNode, error) {
	return r.fetchOne(ctx, SelectOwnedNode, id, owner)
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*filenode.FileNode, error) {
	n := new(FileNode)
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&n.ID,
		&n.UUID,
		&n.OwnerUUID,
		&n.Name,
		&n.NodeType,
		&n.IsPublic,
		&n.ParentUUID,
		&n.StoragePath,

		&n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(n), err
}

func (r *Repository) FetchChildren(ctx context.Context, owner user.UUID, parent filenode.ParentRef, page int) (filenode.FileNodes, error) {
	var parentUUID *uuid.UUID
	if !parent.IsRoot() {
		p := parent.NodeUUID()
		parentUUID = &p
	}

	rows, err := r.db.Query(ctx, SelectChildren, owner, parentUUID, page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ns FileNodes
	for rows.Next() {
		n := new(FileNode)

		if err = rows.Scan(
			&n.ID,
			&n.UUID,
			&n.OwnerUUID,
			&n.Name,
			&n.NodeType,
			&n.IsPublic,
			&n.ParentUUID,
			&n.StoragePath,

			&n.CreatedAt,
		); err != nil {
			return nil, err
		}

		ns = append(ns, n)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ns), nil
}

func (r *Repository) SetVisibility(ctx context.Context, id filenode.UUID, owner user.UUID, isPublic bool) (*filenode.FileNode, error) {
	return r.fetchOne(ctx, UpdateNodeVisibility, id, owner, isPublic)
}

func (r *Repository) CountNodes(ctx context.Context) (uint64, error) {
	var n uint64
	if err := r.db.QueryRow(ctx, CountNodes).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
