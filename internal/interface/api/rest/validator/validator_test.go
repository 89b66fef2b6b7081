package validator

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-manager-api/internal/domain/filenode"
	"file-manager-api/internal/interface/api/rest/dto/file"
)

func TestValidateCreate(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("hello"))

	tests := []struct {
		name     string
		req      file.CreateRequest
		wantKind filenode.Kind
		wantData string
		wantErr  error
	}{
		{
			name:    "missing name",
			req:     file.CreateRequest{Type: "folder"},
			wantErr: ErrMissingName,
		},
		{
			name:    "missing type",
			req:     file.CreateRequest{Name: "x"},
			wantErr: ErrMissingType,
		},
		{
			name:    "unknown type",
			req:     file.CreateRequest{Name: "x", Type: "symlink"},
			wantErr: ErrMissingType,
		},
		{
			name:     "folder needs no data",
			req:      file.CreateRequest{Name: "docs", Type: "folder"},
			wantKind: filenode.KindFolder,
		},
		{
			name:    "file without data",
			req:     file.CreateRequest{Name: "x.txt", Type: "file"},
			wantErr: ErrMissingData,
		},
		{
			name:    "image without data",
			req:     file.CreateRequest{Name: "x.png", Type: "image"},
			wantErr: ErrMissingData,
		},
		{
			name:    "data is not base64",
			req:     file.CreateRequest{Name: "x.txt", Type: "file", Data: "%%%"},
			wantErr: ErrMissingData,
		},
		{
			name:     "file decodes",
			req:      file.CreateRequest{Name: "x.txt", Type: "file", Data: payload},
			wantKind: filenode.KindFile,
			wantData: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, data, err := ValidateCreate(tt.req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantData, string(data))
		})
	}
}

func TestValidatePage(t *testing.T) {
	assert.Equal(t, 0, ValidatePage(""))
	assert.Equal(t, 0, ValidatePage("banana"))
	assert.Equal(t, 0, ValidatePage("-3"))
	assert.Equal(t, 0, ValidatePage("0"))
	assert.Equal(t, 7, ValidatePage("7"))
}

func TestValidateSize(t *testing.T) {
	for size, want := range map[string]int{"": 0, "100": 100, "250": 250, "500": 500} {
		w, err := ValidateSize(size)
		require.NoError(t, err)
		assert.Equal(t, want, w)
	}

	for _, size := range []string{"50", "1000", "abc", "-100"} {
		_, err := ValidateSize(size)
		assert.ErrorIs(t, err, ErrInvalidSize)
	}
}
