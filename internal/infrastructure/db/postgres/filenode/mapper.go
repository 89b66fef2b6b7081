package filenode

import (
	domain "file-manager-api/internal/domain/filenode"
)

func fromDBModel(model *FileNode) *domain.FileNode {
	parent := domain.RootParent()
	if model.ParentUUID != nil {
		parent = domain.NodeParent(*model.ParentUUID)
	}
	var storagePath string
	if model.StoragePath != nil {
		storagePath = *model.StoragePath
	}

	var n = &domain.FileNode{
		UUID:        model.UUID,
		OwnerUUID:   model.OwnerUUID,
		Name:        model.Name,
		Kind:        domain.Kind(model.NodeType),
		IsPublic:    model.IsPublic,
		Parent:      parent,
		StoragePath: storagePath,

		CreatedAt: model.CreatedAt,
	}

	return n
}

func fromDBModels(models *FileNodes) domain.FileNodes {
	ns := make(domain.FileNodes, len(*models))
	for idx, n := range *models {
		ns[idx] = fromDBModel(n)
	}

	return ns
}
