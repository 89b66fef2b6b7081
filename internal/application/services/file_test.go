package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-manager-api/internal/application/ports"
	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/infrastructure/blob"
	"file-manager-api/internal/infrastructure/mq"
)

type fakeNodeRepo struct {
	CreateNodeFunc    func(ctx context.Context, n *filenode.FileNode) (*filenode.FileNode, error)
	FetchByUUIDFunc   func(ctx context.Context, id filenode.UUID) (*filenode.FileNode, error)
	FetchOwnedFunc    func(ctx context.Context, id filenode.UUID, owner uuid.UUID) (*filenode.FileNode, error)
	FetchChildrenFunc func(ctx context.Context, owner uuid.UUID, parent filenode.ParentRef, page int) (filenode.FileNodes, error)
	SetVisibilityFunc func(ctx context.Context, id filenode.UUID, owner uuid.UUID, isPublic bool) (*filenode.FileNode, error)
	CountNodesFunc    func(ctx context.Context) (uint64, error)
}

func (f *fakeNodeRepo) CreateNode(ctx context.Context, n *filenode.FileNode) (*filenode.FileNode, error) {
	return f.CreateNodeFunc(ctx, n)
}

func (f *fakeNodeRepo) FetchByUUID(ctx context.Context, id filenode.UUID) (*filenode.FileNode, error) {
	return f.FetchByUUIDFunc(ctx, id)
}

func (f *fakeNodeRepo) FetchOwned(ctx context.Context, id filenode.UUID, owner uuid.UUID) (*filenode.FileNode, error) {
	return f.FetchOwnedFunc(ctx, id, owner)
}

func (f *fakeNodeRepo) FetchChildren(ctx context.Context, owner uuid.UUID, parent filenode.ParentRef, page int) (filenode.FileNodes, error) {
	return f.FetchChildrenFunc(ctx, owner, parent, page)
}

func (f *fakeNodeRepo) SetVisibility(ctx context.Context, id filenode.UUID, owner uuid.UUID, isPublic bool) (*filenode.FileNode, error) {
	return f.SetVisibilityFunc(ctx, id, owner, isPublic)
}

func (f *fakeNodeRepo) CountNodes(ctx context.Context) (uint64, error) {
	return f.CountNodesFunc(ctx)
}

// fakeContentStore writes into a map keyed by generated path.
type fakeContentStore struct {
	blobs   map[string][]byte
	saveErr error
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{blobs: make(map[string][]byte)}
}

func (f *fakeContentStore) Save(_ context.Context, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := "/store/" + uuid.NewString()
	f.blobs[path] = data
	return path, nil
}

func (f *fakeContentStore) SaveAt(_ context.Context, path string, data []byte) error {
	f.blobs[path] = data
	return nil
}

func (f *fakeContentStore) Load(_ context.Context, path string) ([]byte, error) {
	data, ok := f.blobs[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

type fakeQueue struct {
	in chan mq.ThumbnailJob
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{in: make(chan mq.ThumbnailJob, 8)}
}

func (f *fakeQueue) Connect(context.Context, string) error { return nil }
func (f *fakeQueue) Init() error                           { return nil }
func (f *fakeQueue) PublisherWorker(context.Context)       {}
func (f *fakeQueue) GetInputChan() chan mq.ThumbnailJob    { return f.in }
func (f *fakeQueue) GetConn() *amqp091.Connection          { return nil }

type fileServiceFixture struct {
	nodes   *fakeNodeRepo
	content *fakeContentStore
	queue   *fakeQueue
	svc     ports.FileService
}

func newFileServiceFixture(nodes *fakeNodeRepo) *fileServiceFixture {
	content := newFakeContentStore()
	queue := newFakeQueue()
	users := &fakeUserRepo{
		CountUsersFunc: func(context.Context) (uint64, error) { return 0, nil },
	}
	return &fileServiceFixture{
		nodes:   nodes,
		content: content,
		queue:   queue,
		svc:     NewFileService(nodes, users, content, queue, nil),
	}
}

func echoCreate(ctx context.Context, n *filenode.FileNode) (*filenode.FileNode, error) {
	out := *n
	out.UUID = uuid.New()
	return &out, nil
}

func TestFileService_CreateNode_ParentValidation(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	folderID := uuid.New()
	fileID := uuid.New()

	nodes := &fakeNodeRepo{
		CreateNodeFunc: echoCreate,
		FetchByUUIDFunc: func(_ context.Context, id filenode.UUID) (*filenode.FileNode, error) {
			switch id {
			case folderID:
				return &filenode.FileNode{UUID: folderID, Kind: filenode.KindFolder}, nil
			case fileID:
				return &filenode.FileNode{UUID: fileID, Kind: filenode.KindFile}, nil
			}
			return nil, nil
		},
	}
	fx := newFileServiceFixture(nodes)

	tests := []struct {
		name    string
		parent  filenode.ParentRef
		wantErr error
	}{
		{name: "root parent", parent: filenode.RootParent()},
		{name: "folder parent", parent: filenode.NodeParent(folderID)},
		{name: "missing parent", parent: filenode.NodeParent(uuid.New()), wantErr: ErrParentNotFound},
		{name: "parent is a file", parent: filenode.NodeParent(fileID), wantErr: ErrParentNotFolder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := fx.svc.CreateNode(ctx, ports.CreateNodeInput{
				Owner:  owner,
				Name:   "docs",
				Kind:   filenode.KindFolder,
				Parent: tt.parent,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.parent, n.Parent)
			assert.Empty(t, n.StoragePath)
		})
	}
}

func TestFileService_CreateNode_FileWritesContent(t *testing.T) {
	ctx := context.Background()
	nodes := &fakeNodeRepo{CreateNodeFunc: echoCreate}
	fx := newFileServiceFixture(nodes)

	n, err := fx.svc.CreateNode(ctx, ports.CreateNodeInput{
		Owner: uuid.New(),
		Name:  "note.txt",
		Kind:  filenode.KindFile,
		Data:  []byte("hi"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, n.StoragePath)
	assert.Equal(t, []byte("hi"), fx.content.blobs[n.StoragePath])

	// plain files never reach the pipeline
	assert.Empty(t, fx.queue.in)
}

func TestFileService_CreateNode_ImageEnqueuesJob(t *testing.T) {
	ctx := context.Background()
	nodes := &fakeNodeRepo{CreateNodeFunc: echoCreate}
	fx := newFileServiceFixture(nodes)
	owner := uuid.New()

	n, err := fx.svc.CreateNode(ctx, ports.CreateNodeInput{
		Owner: owner,
		Name:  "cat.png",
		Kind:  filenode.KindImage,
		Data:  []byte{0x89, 0x50, 0x4e, 0x47},
	})
	require.NoError(t, err)

	require.Len(t, fx.queue.in, 1)
	job := <-fx.queue.in
	assert.Equal(t, n.UUID.String(), job.FileID)
	assert.Equal(t, owner.String(), job.UserID)
}

func TestFileService_CreateNode_StorageFailure(t *testing.T) {
	ctx := context.Background()
	nodes := &fakeNodeRepo{CreateNodeFunc: echoCreate}
	fx := newFileServiceFixture(nodes)
	fx.content.saveErr = os.ErrPermission

	_, err := fx.svc.CreateNode(ctx, ports.CreateNodeInput{
		Owner: uuid.New(),
		Name:  "note.txt",
		Kind:  filenode.KindFile,
		Data:  []byte("hi"),
	})
	assert.ErrorIs(t, err, ErrStorage)
}

func TestFileService_GetNode_OwnershipIsExistence(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()
	nodeID := uuid.New()

	nodes := &fakeNodeRepo{
		FetchOwnedFunc: func(_ context.Context, id filenode.UUID, who uuid.UUID) (*filenode.FileNode, error) {
			if id == nodeID && who == owner {
				return &filenode.FileNode{UUID: nodeID, OwnerUUID: owner, Kind: filenode.KindFile}, nil
			}
			return nil, nil
		},
	}
	fx := newFileServiceFixture(nodes)

	n, err := fx.svc.GetNode(ctx, owner, nodeID)
	require.NoError(t, err)
	assert.Equal(t, nodeID, n.UUID)

	_, err = fx.svc.GetNode(ctx, stranger, nodeID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.svc.GetNode(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileService_ListChildren_ClampsPage(t *testing.T) {
	ctx := context.Background()
	var gotPage int
	nodes := &fakeNodeRepo{
		FetchChildrenFunc: func(_ context.Context, _ uuid.UUID, _ filenode.ParentRef, page int) (filenode.FileNodes, error) {
			gotPage = page
			return nil, nil
		},
	}
	fx := newFileServiceFixture(nodes)

	_, err := fx.svc.ListChildren(ctx, uuid.New(), filenode.RootParent(), -3)
	require.NoError(t, err)
	assert.Equal(t, 0, gotPage)
}

func TestFileService_ReadContent(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	fx := newFileServiceFixture(nil)
	path, err := fx.content.Save(ctx, []byte("hi"))
	require.NoError(t, err)
	require.NoError(t, fx.content.SaveAt(ctx, blob.DerivativePath(path, 100), []byte("hi-100")))

	private := &filenode.FileNode{UUID: uuid.New(), OwnerUUID: owner, Name: "note.txt", Kind: filenode.KindFile, StoragePath: path}
	public := &filenode.FileNode{UUID: uuid.New(), OwnerUUID: owner, Name: "note.txt", Kind: filenode.KindFile, IsPublic: true, StoragePath: path}
	folder := &filenode.FileNode{UUID: uuid.New(), OwnerUUID: owner, Name: "docs", Kind: filenode.KindFolder, IsPublic: true}

	fx.nodes = &fakeNodeRepo{
		FetchByUUIDFunc: func(_ context.Context, id filenode.UUID) (*filenode.FileNode, error) {
			for _, n := range []*filenode.FileNode{private, public, folder} {
				if n.UUID == id {
					return n, nil
				}
			}
			return nil, nil
		},
	}
	users := &fakeUserRepo{}
	fx.svc = NewFileService(fx.nodes, users, fx.content, fx.queue, nil)

	tests := []struct {
		name      string
		id        filenode.UUID
		requester *uuid.UUID
		width     int
		wantErr   error
		wantBody  string
		wantType  string
	}{
		{name: "owner reads private", id: private.UUID, requester: &owner, wantBody: "hi", wantType: "text/plain; charset=utf-8"},
		{name: "stranger reads private", id: private.UUID, requester: &stranger, wantErr: ErrNotFound},
		{name: "anonymous reads private", id: private.UUID, wantErr: ErrNotFound},
		{name: "anonymous reads public", id: public.UUID, wantBody: "hi", wantType: "text/plain; charset=utf-8"},
		{name: "missing node", id: uuid.New(), wantErr: ErrNotFound},
		{name: "folder has no content", id: folder.UUID, requester: &owner, wantErr: ErrFolderHasNoContent},
		{name: "existing derivative", id: public.UUID, width: 100, wantBody: "hi-100"},
		{name: "derivative not generated yet", id: public.UUID, width: 250, wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, contentType, err := fx.svc.ReadContent(ctx, tt.id, tt.requester, tt.width)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(data))
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, contentType)
			}
		})
	}
}

func TestFileService_ReadContent_UnknownExtension(t *testing.T) {
	ctx := context.Background()
	fx := newFileServiceFixture(nil)
	path, err := fx.content.Save(ctx, []byte{0x01})
	require.NoError(t, err)

	n := &filenode.FileNode{UUID: uuid.New(), OwnerUUID: uuid.New(), Name: "blob.weird", Kind: filenode.KindFile, IsPublic: true, StoragePath: path}
	fx.nodes = &fakeNodeRepo{
		FetchByUUIDFunc: func(context.Context, filenode.UUID) (*filenode.FileNode, error) { return n, nil },
	}
	fx.svc = NewFileService(fx.nodes, &fakeUserRepo{}, fx.content, fx.queue, nil)

	_, contentType, err := fx.svc.ReadContent(ctx, n.UUID, nil, 0)
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", contentType)
}

func TestFileService_Stats(t *testing.T) {
	ctx := context.Background()
	nodes := &fakeNodeRepo{
		CountNodesFunc: func(context.Context) (uint64, error) { return 7, nil },
	}
	users := &fakeUserRepo{
		CountUsersFunc: func(context.Context) (uint64, error) { return 3, nil },
	}
	svc := NewFileService(nodes, users, newFakeContentStore(), newFakeQueue(), nil)

	u, f, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u)
	assert.Equal(t, uint64(7), f)
}
