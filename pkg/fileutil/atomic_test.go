package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"successful write", []byte("hello world\n"), 0644},
		{"empty data", []byte{}, 0644},
		{"private permissions", []byte("{}\n"), 0600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc.json")

			require.NoError(t, AtomicWriteFile(path, tt.data, tt.perm))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(tt.data), string(got))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.perm, info.Mode().Perm())
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "file.json")
	assert.Error(t, AtomicWriteFile(path, []byte("x"), 0644))
}

func TestAtomicWriteFile_NoTempFileLeft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	require.NoError(t, AtomicWriteFile(path, []byte("first"), 0644))
	require.NoError(t, AtomicWriteFile(path, []byte("second"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), ".mcpwiz-atomic-"), "temp file left behind: %s", e.Name())
	}

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"mcp-proxy.json", FormatJSON},
		{"mcp-proxy.yaml", FormatYAML},
		{"MCP-PROXY.YML", FormatYAML},
		{"mcp-proxy.toml", FormatTOML},
		{"mcp-proxy", FormatJSON},
		{"mcp-proxy.conf", FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFromPath(tt.path))
		})
	}
}

func TestMarshal_TrailingNewline(t *testing.T) {
	v := map[string]any{"targets": []any{map[string]any{"name": "web"}}}

	for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Marshal(f, v)
			require.NoError(t, err)
			require.NotEmpty(t, data)
			assert.Equal(t, byte('\n'), data[len(data)-1])
			assert.Contains(t, string(data), "web")
		})
	}
}

func TestMarshal_UnknownFormat(t *testing.T) {
	_, err := Marshal(Format("xml"), map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = Unmarshal(Format("xml"), nil, &map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestMarshal_YAMLUnsupportedType(t *testing.T) {
	_, err := Marshal(FormatYAML, map[string]any{"fn": func() {}})
	assert.Error(t, err)
}

func TestAtomicWrite_PicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	v := map[string]any{"name": "web"}

	yamlPath := filepath.Join(dir, "doc.yaml")
	require.NoError(t, AtomicWrite(yamlPath, v))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "name: web\n", string(data))

	tomlPath := filepath.Join(dir, "doc.toml")
	require.NoError(t, AtomicWrite(tomlPath, v))
	data, err = os.ReadFile(tomlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name = ")
	assert.Contains(t, string(data), "web")
}
