package ports

import (
	"context"

	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/domain/user"
)

type CreateNodeInput struct {
	Owner    user.UUID
	Name     string
	Kind     filenode.Kind
	Parent   filenode.ParentRef
	IsPublic bool
	// Data is the decoded payload; nil for folders.
	Data []byte
}

type FileService interface {
	CreateNode(ctx context.Context, in CreateNodeInput) (*filenode.FileNode, error)
	GetNode(ctx context.Context, owner user.UUID, id filenode.UUID) (*filenode.FileNode, error)
	ListChildren(ctx context.Context, owner user.UUID, parent filenode.ParentRef, page int) (filenode.FileNodes, error)
	SetVisibility(ctx context.Context, owner user.UUID, id filenode.UUID, isPublic bool) (*filenode.FileNode, error)
	// ReadContent serves the original bytes, or the derivative at width
	// when width != 0. requester is nil for anonymous calls.
	ReadContent(ctx context.Context, id filenode.UUID, requester *user.UUID, width int) ([]byte, string, error)
	Stats(ctx context.Context) (users, files uint64, err error)
}
