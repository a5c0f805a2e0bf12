package commands

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestSetup_AddTargetsAndComplete(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	in := script(
		"n",
		"a", "mcp", "sse", "web", "10.0.0.5", "8080", "/mcp",
		"a", "mcp", "stdio", "gh", "npx", "-y server-github",
		"a", "a2a", "planner", "planner", "9000", "/a2a",
		"n",
	)
	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), in, &out, cfg))

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{"web", "gh", "planner"}, doc.Names())

	gh, _ := doc.At(1)
	assert.Equal(t, target.KindStdio, target.Classify(gh))
	assert.Equal(t, []string{"-y", "server-github"}, gh.Stdio.Args)

	assert.Equal(t, []string{"/targets/mcp", "/targets/mcp", "/targets/a2a"}, proxy.calls())
	assert.Contains(t, out.String(), "Wrote 3 target(s)")
}

func TestSetup_StdioArgumentsKeepQuoting(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	in := script(
		"n",
		"a", "mcp", "stdio", "echo", "echo-server", `--greeting "hello world" --path '/tmp/a b'`,
		"n",
	)
	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), in, &out, cfg))

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	got, ok := doc.At(0)
	require.True(t, ok)
	assert.Equal(t, []string{"--greeting", "hello world", "--path", "/tmp/a b"}, got.Stdio.Args)
}

func TestSetup_UnbalancedQuoteRejected(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	in := script(
		"n",
		"a", "mcp", "stdio", "echo", "echo-server", `--greeting "hello`,
		"n",
	)
	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), in, &out, cfg))

	assert.Contains(t, out.String(), "Invalid arguments")
	assert.Empty(t, proxy.calls())
}

func TestSetup_ValidationErrorShownInline(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	in := script(
		"n",
		"a", "mcp", "stdio", "gh", "", "",
		"n",
	)
	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), in, &out, cfg))

	assert.Contains(t, out.String(), "stdio target requires cmd")
	assert.Empty(t, proxy.calls())

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestSetup_RejectionShownVerbatim(t *testing.T) {
	proxy := newFakeProxy(t)
	proxy.rejectWith("duplicate name")
	cfg := testConfig(t, proxy)

	in := script(
		"n",
		"a", "mcp", "openapi", "pets", "petstore", "80",
		"n",
	)
	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), in, &out, cfg))

	assert.Contains(t, out.String(), "duplicate name")
	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestSetup_RemoveByPosition(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	in := script(
		"n",
		"a", "mcp", "sse", "first", "h", "1", "/a",
		"a", "mcp", "sse", "second", "h", "2", "/b",
		"remove 0",
		"n",
	)
	require.NoError(t, runSetup(context.Background(), in, &bytes.Buffer{}, cfg))

	doc, err := proxyconfig.Load(cfg.Document)
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, doc.Names())
}

func TestSetup_BackAndQuit(t *testing.T) {
	proxy := newFakeProxy(t)
	cfg := testConfig(t, proxy)

	in := script("n", "b", "q")
	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), in, &out, cfg))

	assert.Contains(t, out.String(), "Setup aborted")
	_, err := os.Stat(cfg.Document)
	assert.True(t, os.IsNotExist(err), "quitting must not write the document")
}

func TestSetup_EOFQuits(t *testing.T) {
	cfg := testConfig(t, newFakeProxy(t))

	require.NoError(t, runSetup(context.Background(), strings.NewReader(""), &bytes.Buffer{}, cfg))
	_, err := os.Stat(cfg.Document)
	assert.True(t, os.IsNotExist(err))
}

func TestSetup_ShowsListenerFromDocument(t *testing.T) {
	cfg := testConfig(t, newFakeProxy(t))

	doc := proxyconfig.New()
	require.NoError(t, doc.SetField("listener", map[string]any{"sse": map[string]any{"port": 3000}}))
	require.NoError(t, proxyconfig.Save(context.Background(), cfg.Document, doc))

	var out bytes.Buffer
	require.NoError(t, runSetup(context.Background(), script("q"), &out, cfg))
	assert.Contains(t, out.String(), "Listener from")
	assert.Contains(t, out.String(), "3000")
}
