package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/domain/user"
	"file-manager-api/internal/infrastructure/blob"
	"file-manager-api/internal/infrastructure/mq"
)

var (
	ErrNotFound           = errors.New("file not found")
	ErrParentNotFound     = errors.New("parent not found")
	ErrParentNotFolder    = errors.New("parent is not a folder")
	ErrFolderHasNoContent = errors.New("folder has no content")
	ErrStorage            = errors.New("content storage failure")
)

const defaultContentType = "application/octet-stream"

type FileService struct {
	nodes    filenode.Repository
	users    user.Repository
	content  ports.ContentStore
	mq       ports.RabbitMQ
	mCounter *prometheus.CounterVec
}

func NewFileService(
	nodes filenode.Repository,
	users user.Repository,
	content ports.ContentStore,
	queue ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		nodes:    nodes,
		users:    users,
		content:  content,
		mq:       queue,
		mCounter: mCounter,
	}
}

// CreateNode persists a folder, file or image under the caller. The
// parent is validated as an existing folder with a read before the
// insert; there is no transactional check-and-insert (folders are
// never deleted on this surface, so the window is moot). Content is
// written before metadata, so a crash between the two leaves an
// unreferenced blob, never a dangling reference.
func (fs *FileService) CreateNode(ctx context.Context, in ports.CreateNodeInput) (*filenode.FileNode, error) {
	if !in.Parent.IsRoot() {
		p, err := fs.nodes.FetchByUUID(ctx, in.Parent.NodeUUID())
		if err != nil {
			return nil, fmt.Errorf("fetch parent: %w", err)
		}
		if p == nil {
			return nil, ErrParentNotFound
		}
		if p.Kind != filenode.KindFolder {
			return nil, ErrParentNotFolder
		}
	}

	n := &filenode.FileNode{
		OwnerUUID: in.Owner,
		Name:      in.Name,
		Kind:      in.Kind,
		IsPublic:  in.IsPublic,
		Parent:    in.Parent,
	}

	if in.Kind.HasContent() {
		path, err := fs.content.Save(ctx, in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		n.StoragePath = path
	}

	out, err := fs.nodes.CreateNode(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("create node: %w", err)
	}

	if in.Kind == filenode.KindImage {
		// fire-and-forget; the pipeline catches up on its own time
		fs.mq.GetInputChan() <- mq.ThumbnailJob{
			Id:     uuid.New(),
			TS:     time.Now(),
			UserID: out.OwnerUUID.String(),
			FileID: out.UUID.String(),
		}
	}

	if fs.mCounter != nil {
		fs.mCounter.WithLabelValues("files_created_total").Inc()
	}

	return out, nil
}

func (fs *FileService) GetNode(ctx context.Context, owner user.UUID, id filenode.UUID) (*filenode.FileNode, error) {
	n, err := fs.nodes.FetchOwned(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("fetch node: %w", err)
	}
	if n == nil {
		// missing and not-yours are indistinguishable on purpose
		return nil, ErrNotFound
	}

	return n, nil
}

func (fs *FileService) ListChildren(ctx context.Context, owner user.UUID, parent filenode.ParentRef, page int) (filenode.FileNodes, error) {
	if page < 0 {
		page = 0
	}

	ns, err := fs.nodes.FetchChildren(ctx, owner, parent, page)
	if err != nil {
		return nil, fmt.Errorf("fetch children: %w", err)
	}

	return ns, nil
}

func (fs *FileService) SetVisibility(ctx context.Context, owner user.UUID, id filenode.UUID, isPublic bool) (*filenode.FileNode, error) {
	n, err := fs.nodes.SetVisibility(ctx, id, owner, isPublic)
	if err != nil {
		return nil, fmt.Errorf("update visibility: %w", err)
	}
	if n == nil {
		return nil, ErrNotFound
	}

	return n, nil
}

// ReadContent serves the node's bytes, or its derivative when width is
// one of the fixed sizes. Access failures on private nodes surface as
// ErrNotFound, never as an authorization error. A derivative the
// pipeline has not produced yet is also ErrNotFound.
func (fs *FileService) ReadContent(ctx context.Context, id filenode.UUID, requester *user.UUID, width int) ([]byte, string, error) {
	n, err := fs.nodes.FetchByUUID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("fetch node: %w", err)
	}
	if n == nil {
		return nil, "", ErrNotFound
	}
	if !n.IsPublic && (requester == nil || *requester != n.OwnerUUID) {
		return nil, "", ErrNotFound
	}
	if n.Kind == filenode.KindFolder {
		return nil, "", ErrFolderHasNoContent
	}

	path := n.StoragePath
	if width != 0 {
		path = blob.DerivativePath(path, width)
	}

	data, err := fs.content.Load(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(n.Name))
	if contentType == "" {
		contentType = defaultContentType
	}

	return data, contentType, nil
}

func (fs *FileService) Stats(ctx context.Context) (uint64, uint64, error) {
	users, err := fs.users.CountUsers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	files, err := fs.nodes.CountNodes(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("count files: %w", err)
	}

	return users, files, nil
}
