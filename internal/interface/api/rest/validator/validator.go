package validator

import (
	"encoding/base64"
	"errors"
	"strconv"

	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/interface/api/rest/dto/file"
)

// Error texts are the wire-level messages clients already depend on.
var (
	ErrMissingName = errors.New("Missing name")
	ErrMissingType = errors.New("Missing type")
	ErrMissingData = errors.New("Missing data")
	ErrInvalidSize = errors.New("Invalid size")
)

// ValidateCreate checks the request shape and decodes the base64
// payload; hierarchy rules stay in the service.
func ValidateCreate(r file.CreateRequest) (filenode.Kind, []byte, error) {
	if r.Name == "" {
		return "", nil, ErrMissingName
	}

	kind, ok := filenode.ParseKind(r.Type)
	if !ok {
		return "", nil, ErrMissingType
	}

	if !kind.HasContent() {
		return kind, nil, nil
	}

	if r.Data == "" {
		return "", nil, ErrMissingData
	}
	data, err := base64.StdEncoding.DecodeString(r.Data)
	if err != nil {
		return "", nil, ErrMissingData
	}

	return kind, data, nil
}

// ValidatePage clamps anything unusable to page 0.
func ValidatePage(page string) int {
	p, err := strconv.Atoi(page)
	if err != nil || p < 0 {
		return 0
	}
	return p
}

// ValidateSize maps the size query onto a derivative width; 0 means
// "original".
func ValidateSize(size string) (int, error) {
	if size == "" {
		return 0, nil
	}
	switch size {
	case "100", "250", "500":
		w, _ := strconv.Atoi(size)
		return w, nil
	}
	return 0, ErrInvalidSize
}
