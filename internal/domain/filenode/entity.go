package filenode

import (
	"time"

	"github.com/google/uuid"

	"file-manager-api/internal/domain/user"
)

type (
	ID   uint64
	UUID = uuid.UUID
	Kind string
)

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
	KindImage  Kind = "image"
)

// ParseKind maps a wire-level type string onto a Kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindFolder, KindFile, KindImage:
		return Kind(s), true
	}
	return "", false
}

func (k Kind) HasContent() bool { return k != KindFolder }

// ParentRef is either the hierarchy root or a reference to an existing
// folder node. The zero value is the root; the literal `0` only exists
// at the API boundary.
type ParentRef struct {
	id   UUID
	node bool
}

func RootParent() ParentRef        { return ParentRef{} }
func NodeParent(id UUID) ParentRef { return ParentRef{id: id, node: true} }
func (p ParentRef) IsRoot() bool   { return !p.node }
func (p ParentRef) NodeUUID() UUID { return p.id }

type (
	FileNode struct {
		UUID      UUID
		OwnerUUID user.UUID
		Name      string
		Kind      Kind
		IsPublic  bool
		Parent    ParentRef
		// StoragePath is empty for folders. Once set it never changes;
		// derivatives are written next to it, never over it.
		StoragePath string

		CreatedAt time.Time
	}
	FileNodes []*FileNode
)
