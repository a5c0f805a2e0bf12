package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
)

func TestConfigOutput(t *testing.T) {
	t.Setenv("MCPWIZ_CONFIG_DIR", t.TempDir())
	t.Setenv("MCPWIZ_SERVER_PORT", "19001")
	config.Init()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	var buf bytes.Buffer
	if err := writeYAML(&buf, cfg); err != nil {
		t.Fatalf("writeYAML() error = %v", err)
	}
	if !strings.Contains(buf.String(), "port: 19001") {
		t.Errorf("expected env override in output, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := runConfigGet(&buf, "server.address"); err != nil {
		t.Fatalf("runConfigGet() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != config.DefaultServerAddress {
		t.Errorf("server.address = %q", buf.String())
	}

	if err := runConfigGet(&buf, "no.such.key"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestEnsureConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MCPWIZ_CONFIG_DIR", dir)
	config.Init()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	path, err := ensureConfigFile(cfg)
	if err != nil {
		t.Fatalf("ensureConfigFile() error = %v", err)
	}
	if path != filepath.Join(dir, "config.yaml") {
		t.Errorf("path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "port: 19000") {
		t.Errorf("seeded config missing defaults:\n%s", data)
	}

	// A second call keeps the existing file.
	if err := os.WriteFile(path, []byte("document: custom.yaml\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ensureConfigFile(cfg); err != nil {
		t.Fatal(err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "document: custom.yaml\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}
