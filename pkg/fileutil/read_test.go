package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

func writeSized(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func TestReadFileWithLimit(t *testing.T) {
	tests := []struct {
		name    string
		size    int64
		limit   int64
		wantErr bool
	}{
		{"under explicit limit", 100, 512, false},
		{"at explicit limit", 512, 512, false},
		{"over explicit limit", 513, 512, true},
		{"default limit", MaxFileSize, 0, false},
		{"over default limit", MaxFileSize + 1, 0, true},
		{"negative limit uses default", 1024, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSized(t, tt.size)

			data, err := ReadFileWithLimit(path, tt.limit)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Len(t, data, int(tt.size))
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFileTooLarge))

			var sizeErr *SizeError
			require.True(t, errors.As(err, &sizeErr))
			assert.Equal(t, path, sizeErr.Path)
			wantLimit := tt.limit
			if wantLimit <= 0 {
				wantLimit = MaxFileSize
			}
			assert.Equal(t, wantLimit, sizeErr.Limit)
		})
	}
}

func TestReadFileWithLimit_Missing(t *testing.T) {
	_, err := ReadFileWithLimit(filepath.Join(t.TempDir(), "missing.json"), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.False(t, errors.Is(err, ErrFileTooLarge))
}
