package proxyconfig

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/logging"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
	"github.com/mcp-proxy/mcp-proxy/pkg/fileutil"
)

func sampleConfig(t *testing.T) *Config {
	t.Helper()
	cfg := New()
	require.NoError(t, cfg.SetField("type", "static"))
	cfg.Append(target.Target{Name: "gh", Stdio: &target.Stdio{Cmd: "npx", Args: []string{"-y", "server-github"}}})
	cfg.Append(target.Target{Name: "web", SSE: &target.SSE{Host: "10.0.0.5", Port: 8080, Path: "/mcp"}})
	cfg.Append(target.Target{Name: "pets", OpenAPI: &target.OpenAPI{Host: "petstore", Port: 80}})
	cfg.Append(target.Target{Name: "planner", A2A: &target.A2A{Host: "planner", Port: 9000, Path: "/a2a"}})
	return cfg
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"proxy.json", "proxy.yaml", "proxy.yml", "proxy.toml", "noext"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			want := sampleConfig(t)

			require.NoError(t, Save(context.Background(), path, want))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want.Targets(), got.Targets())

			raw, ok := got.Field("type")
			require.True(t, ok, "unknown field should survive")
			assert.JSONEq(t, `"static"`, string(raw))
		})
	}
}

func TestSave_YAMLKeepsIntegerPorts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxy.yaml")
	require.NoError(t, Save(context.Background(), path, sampleConfig(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "port: 8080")
}

func TestLoad_Empty(t *testing.T) {
	for _, name := range []string{"empty.json", "empty.yaml", "empty.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, []byte("\n"), 0o644))

			cfg, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, 0, cfg.Len())
		})
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadOrNew(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrNew(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Len())

	path := filepath.Join(dir, "proxy.json")
	require.NoError(t, Save(context.Background(), path, sampleConfig(t)))
	cfg, err = LoadOrNew(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Len())
}

func TestLoad_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "huge.json")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte(" "), MaxDocumentSize+1), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fileutil.ErrFileTooLarge))

	var sizeErr *fileutil.SizeError
	require.True(t, errors.As(err, &sizeErr))
	assert.Equal(t, int64(MaxDocumentSize), sizeErr.Limit)
}

func TestSave_TOMLOmitsNullsWithWarning(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(src, []byte(`{
  "listener": null,
  "type": "mcp",
  "metrics": {"address": null, "port": 9091},
  "targets": [{"name": "web", "sse": {"host": "localhost", "port": 8080, "path": "/mcp"}}]
}`), 0o644))

	cfg, err := Load(src)
	require.NoError(t, err)

	var logs bytes.Buffer
	ctx := logging.NewContext(context.Background(), logging.New(logging.Config{
		Level:  slog.LevelWarn,
		Format: logging.FormatJSON,
		Output: &logs,
	}))

	out := filepath.Join(dir, "out.toml")
	require.NoError(t, Save(ctx, out, cfg))

	assert.Contains(t, logs.String(), "null fields omitted")
	assert.Contains(t, logs.String(), "listener, metrics.address")

	got, err := Load(out)
	require.NoError(t, err)
	_, ok := got.Field("listener")
	assert.False(t, ok)
	raw, ok := got.Field("metrics")
	require.True(t, ok)
	assert.JSONEq(t, `{"port": 9091}`, string(raw))
	assert.Equal(t, []string{"web"}, got.Names())
}

func TestSave_YAMLKeepsNulls(t *testing.T) {
	cfg := New()
	require.NoError(t, cfg.SetField("listener", nil))

	var logs bytes.Buffer
	ctx := logging.NewContext(context.Background(), logging.New(logging.Config{
		Level:  slog.LevelWarn,
		Format: logging.FormatJSON,
		Output: &logs,
	}))

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(ctx, path, cfg))
	assert.Empty(t, logs.String())

	got, err := Load(path)
	require.NoError(t, err)
	raw, ok := got.Field("listener")
	require.True(t, ok)
	assert.Equal(t, "null", string(raw))
}
