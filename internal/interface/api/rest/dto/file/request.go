package file

type (
	CreateRequest struct {
		Name string `json:"name"`
		Type string `json:"type"`
		// ParentID is the literal 0 (or "0", or absent) for the root,
		// otherwise a node uuid string.
		ParentID any    `json:"parentId"`
		IsPublic bool   `json:"isPublic"`
		Data     string `json:"data"`
	}
)
