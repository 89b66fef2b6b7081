package filenode

import (
	"time"

	"github.com/google/uuid"
)

type (
	// FileNode is the db row; internal bigserial ids never leave this
	// package, relations surface as uuids via the joined selects.
	FileNode struct {
		ID          uint64
		UUID        uuid.UUID
		OwnerUUID   uuid.UUID
		Name        string
		NodeType    string
		IsPublic    bool
		ParentUUID  *uuid.UUID
		StoragePath *string

		CreatedAt time.Time
	}
	FileNodes []*FileNode
)
