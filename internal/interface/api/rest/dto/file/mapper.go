package file

import (
	"errors"

	"github.com/google/uuid"

	"file-manager-api/internal/domain/filenode"
)

var ErrBadParentRef = errors.New("parent reference is not 0 or a node id")

func ToResponseFile(nDomain filenode.FileNode) File {
	var parentID any = 0
	if !nDomain.Parent.IsRoot() {
		parentID = nDomain.Parent.NodeUUID().String()
	}

	var f = File{
		ID:       nDomain.UUID.String(),
		UserID:   nDomain.OwnerUUID.String(),
		Name:     nDomain.Name,
		Type:     string(nDomain.Kind),
		IsPublic: nDomain.IsPublic,
		ParentID: parentID,
	}

	return f
}

func ToResponseFiles(nsDomain filenode.FileNodes) Files {
	fs := make(Files, len(nsDomain))
	for idx, n := range nsDomain {
		fs[idx] = ToResponseFile(*n)
	}

	return fs
}

// ToParentRef translates the boundary sentinel into the tagged domain
// value. JSON numbers arrive as float64, so the 0 sentinel shows up as
// either 0.0 or the string "0".
func ToParentRef(v any) (filenode.ParentRef, error) {
	switch p := v.(type) {
	case nil:
		return filenode.RootParent(), nil
	case float64:
		if p == 0 {
			return filenode.RootParent(), nil
		}
	case string:
		if p == "" || p == "0" {
			return filenode.RootParent(), nil
		}
		id, err := uuid.Parse(p)
		if err == nil {
			return filenode.NodeParent(id), nil
		}
	}
	return filenode.RootParent(), ErrBadParentRef
}
