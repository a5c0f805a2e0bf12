package commands

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// fakeProxy is an admin listener that records registrations.
type fakeProxy struct {
	srv *httptest.Server

	mu       sync.Mutex
	paths    []string
	received []target.Target
	reject   string
}

func newFakeProxy(t *testing.T) *fakeProxy {
	t.Helper()
	p := &fakeProxy{}
	p.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()

		p.paths = append(p.paths, r.URL.Path)
		if p.reject != "" {
			http.Error(w, p.reject, http.StatusConflict)
			return
		}
		data, _ := io.ReadAll(r.Body)
		var tgt target.Target
		if err := json.Unmarshal(data, &tgt); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.received = append(p.received, tgt)
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(p.srv.Close)
	return p
}

func (p *fakeProxy) rejectWith(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reject = msg
}

func (p *fakeProxy) calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

// testConfig points the CLI at proxy and a document in a temp directory.
func testConfig(t *testing.T, p *fakeProxy) *config.Config {
	t.Helper()
	host, portStr, err := net.SplitHostPort(p.srv.Listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}
	return &config.Config{
		Server:       config.ServerConfig{Address: host, Port: port},
		Registration: config.RegistrationConfig{Timeout: 5 * time.Second},
		Document:     filepath.Join(t.TempDir(), "mcp-proxy.json"),
	}
}
