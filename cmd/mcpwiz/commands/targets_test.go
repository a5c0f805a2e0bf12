package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/registration"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

func sseOptions(name string) addOptions {
	return addOptions{
		category: "mcp",
		kind:     "sse",
		name:     name,
		host:     "10.0.0.5",
		port:     "8080",
		path:     "/mcp",
	}
}

func TestTargetsAdd_RegistersThenWrites(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	var buf bytes.Buffer
	require.NoError(t, runTargetsAdd(context.Background(), &buf, cfg, sseOptions("web")))

	assert.Equal(t, []string{registration.MCPTargetsPath}, proxy.calls())
	assert.Contains(t, buf.String(), `Added target "web"`)

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())
	got, _ := doc.At(0)
	assert.Equal(t, target.KindSSE, target.Classify(got))
	assert.Equal(t, 8080, got.SSE.Port)
}

func TestTargetsAdd_A2AUsesA2AEndpoint(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	opts := addOptions{category: "a2a", name: "planner", host: "planner", port: "9000", path: "/a2a"}
	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, opts))

	assert.Equal(t, []string{registration.A2ATargetsPath}, proxy.calls())
}

func TestTargetsAdd_InvalidDraftMakesNoCall(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	var buf bytes.Buffer
	opts := addOptions{category: "mcp", kind: "stdio", name: "gh"}
	err := runTargetsAdd(context.Background(), &buf, cfg, opts)

	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.True(t, errors.Is(err, errors.ErrInvalidTarget))
	assert.Contains(t, buf.String(), "cmd")
	assert.Empty(t, proxy.calls())

	doc, err := proxyconfig.LoadOrNew(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestTargetsAdd_PortBoundaries(t *testing.T) {
	tests := []struct {
		port    string
		wantErr bool
	}{
		{"0", true},
		{"1", false},
		{"65535", false},
		{"65536", true},
	}
	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			proxy := newFakeProxy(t)
			cfg := testConfig(t, proxy)

			opts := sseOptions("web")
			opts.port = tt.port
			err := runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, opts)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, proxy.calls())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetsAdd_RejectedMessageVerbatim(t *testing.T) {
	proxy := newFakeProxy(t)
	proxy.rejectWith("target with name web already exists")
	cfg := testConfig(t, proxy)

	err := runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("web"))
	require.Error(t, err)
	assert.Equal(t, "target with name web already exists", err.Error())
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	doc, err := proxyconfig.LoadOrNew(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestTargetsAdd_ProxyDown(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)
	proxy.srv.Close()

	err := runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("web"))
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
}

func TestTargetsAdd_UnknownCategory(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	opts := sseOptions("web")
	opts.category = "grpc"
	err := runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, opts)
	require.Error(t, err)
	assert.Empty(t, proxy.calls())
}

func TestTargetsList(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	doc := proxyconfig.New()
	doc.Append(target.Target{Name: "gh", Stdio: &target.Stdio{Cmd: "npx", Args: []string{"-y", "server-github"}}})
	doc.Append(target.Target{Name: "web", SSE: &target.SSE{Host: "10.0.0.5", Port: 8080, Path: "/mcp"}})
	doc.Append(target.Target{Name: "bare"})
	require.NoError(t, proxyconfig.Save(context.Background(), cfg.Document, doc))

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runTargetsList(&buf, cfg, false))

		out := buf.String()
		assert.Contains(t, out, "npx -y server-github")
		assert.Contains(t, out, "10.0.0.5:8080/mcp")
		assert.Contains(t, out, "no variant populated")
		assert.Less(t, strings.Index(out, "gh"), strings.Index(out, "web"), "order is preserved")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, runTargetsList(&buf, cfg, true))

		var got listJSONOutput
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got.Targets, 3)
		assert.Equal(t, "stdio", got.Targets[0].Kind)
		assert.Equal(t, "sse", got.Targets[1].Kind)
		assert.Equal(t, "sse", got.Targets[2].Kind, "empty targets fall back to sse")

		require.Len(t, got.Issues, 1)
		assert.Equal(t, "bare", got.Issues[0].Target)
		assert.Equal(t, "warning", got.Issues[0].Severity)
	})
}

func TestTargetsList_JSONReportsStoredProblems(t *testing.T) {
	cfg := testConfig(t, newFakeProxy(t))
	require.NoError(t, os.WriteFile(cfg.Document, []byte(`{
  "targets": [
    {"name": "both", "stdio": {"cmd": "npx"}, "sse": {"host": "localhost", "port": 8080, "path": "/mcp"}},
    {"name": "api", "openapi": {"host": "petstore", "port": 0}}
  ]
}`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, runTargetsList(&buf, cfg, true))

	var got listJSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Targets, 2)
	assert.Equal(t, "stdio", got.Targets[0].Kind)

	var shape, port bool
	for _, issue := range got.Issues {
		switch {
		case issue.Target == "both" && strings.Contains(issue.Message, "several variants populated (stdio, sse)"):
			shape = true
			assert.Equal(t, "warning", issue.Severity)
		case issue.Target == "api" && issue.Field == "port":
			port = true
			assert.Equal(t, "error", issue.Severity)
		}
	}
	assert.True(t, shape, "two-group target reported: %+v", got.Issues)
	assert.True(t, port, "bad stored port reported: %+v", got.Issues)
}

func TestTargetsList_JSONEmpty(t *testing.T) {
	cfg := testConfig(t, newFakeProxy(t))

	var buf bytes.Buffer
	require.NoError(t, runTargetsList(&buf, cfg, true))
	assert.JSONEq(t, `{"targets": [], "issues": []}`, buf.String())
}

func TestTargetsList_Empty(t *testing.T) {
	cfg := testConfig(t, newFakeProxy(t))

	var buf bytes.Buffer
	require.NoError(t, runTargetsList(&buf, cfg, false))
	assert.Contains(t, buf.String(), "No targets")
}

func TestTargetsRemove(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("first")))
	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("second")))

	var buf bytes.Buffer
	noPick := func([]target.Target) (int, bool, error) {
		t.Fatal("picker should not be used when a position is given")
		return 0, false, nil
	}
	require.NoError(t, runTargetsRemove(context.Background(), &buf, cfg, 0, noPick))
	assert.Contains(t, buf.String(), "remains registered")

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, doc.Names())
	assert.Len(t, proxy.calls(), 2, "removal makes no call to the proxy")
}

func TestTargetsRemove_Picker(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)
	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("a")))
	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("b")))

	pickSecond := func(targets []target.Target) (int, bool, error) {
		return 1, true, nil
	}
	require.NoError(t, runTargetsRemove(context.Background(), &bytes.Buffer{}, cfg, -1, pickSecond))

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, doc.Names())

	abort := func([]target.Target) (int, bool, error) { return 0, false, nil }
	require.NoError(t, runTargetsRemove(context.Background(), &bytes.Buffer{}, cfg, -1, abort))
	doc, err = proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Len())
}

func TestTargetsRemove_OutOfRange(t *testing.T) {
	cfg := testConfig(t, newFakeProxy(t))

	err := runTargetsRemove(context.Background(), &bytes.Buffer{}, cfg, 3, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, proxyconfig.ErrIndexOutOfRange))
}

func TestTargetsRemove_NumberedPicker(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)
	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("a")))
	require.NoError(t, runTargetsAdd(context.Background(), &bytes.Buffer{}, cfg, sseOptions("b")))

	var out bytes.Buffer
	pick := numberedPicker(strings.NewReader("0\n"), &out)
	require.NoError(t, runTargetsRemove(context.Background(), &out, cfg, -1, pick))
	assert.Contains(t, out.String(), "[1] b (sse)")

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, doc.Names())

	err = runTargetsRemove(context.Background(), &bytes.Buffer{}, cfg, -1, numberedPicker(strings.NewReader("7\n"), &bytes.Buffer{}))
	assert.Error(t, err)
}
