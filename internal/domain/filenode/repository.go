package filenode

import (
	"context"

	"file-manager-api/internal/domain/user"
)

type Repository interface {
	// CreateNode persists the node and returns it with its assigned UUID.
	CreateNode(ctx context.Context, n *FileNode) (*FileNode, error)
	// FetchByUUID looks a node up regardless of owner (content reads).
	FetchByUUID(ctx context.Context, id UUID) (*FileNode, error)
	// FetchOwned looks a node up scoped to an owner; a miss on either
	// returns (nil, nil).
	FetchOwned(ctx context.Context, id UUID, owner user.UUID) (*FileNode, error)
	FetchChildren(ctx context.Context, owner user.UUID, parent ParentRef, page int) (FileNodes, error)
	SetVisibility(ctx context.Context, id UUID, owner user.UUID, isPublic bool) (*FileNode, error)
	CountNodes(ctx context.Context) (uint64, error)
}
