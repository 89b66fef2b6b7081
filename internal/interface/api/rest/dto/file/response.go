package file

type (
	// File is the canonical view: every id renders as a uuid string
	// except the root parent, which renders as the integer 0.
	File struct {
		ID       string `json:"id"`
		UserID   string `json:"userId"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		IsPublic bool   `json:"isPublic"`
		ParentID any    `json:"parentId"`
	}
	Files []File
)
