package registration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// Admin API paths for target creation.
const (
	MCPTargetsPath = "/targets/mcp"
	A2ATargetsPath = "/targets/a2a"
)

// RequestIDHeader carries a unique ID per registration call for correlating
// wizard logs with proxy logs.
const RequestIDHeader = "X-Request-Id"

// DefaultTimeout bounds a single registration call.
const DefaultTimeout = 10 * time.Second

// maxResponseSize caps how much of an error body is read.
const maxResponseSize = 64 << 10

// HTTPService talks to the proxy admin listener over plain HTTP.
type HTTPService struct {
	client *http.Client
}

// HTTPOption configures an HTTPService.
type HTTPOption func(*HTTPService)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPService) {
		s.client = c
	}
}

// WithTimeout sets the per-call timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPService) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// NewHTTPService creates an HTTPService with DefaultTimeout.
func NewHTTPService(opts ...HTTPOption) *HTTPService {
	s := &HTTPService{client: &http.Client{Timeout: DefaultTimeout}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMCPTarget registers an stdio, sse or openapi target.
func (s *HTTPService) CreateMCPTarget(ctx context.Context, address string, port int, t target.Target) error {
	return s.post(ctx, address, port, MCPTargetsPath, t)
}

// CreateA2ATarget registers an a2a target.
func (s *HTTPService) CreateA2ATarget(ctx context.Context, address string, port int, t target.Target) error {
	return s.post(ctx, address, port, A2ATargetsPath, t)
}

func (s *HTTPService) post(ctx context.Context, address string, port int, path string, t target.Target) error {
	body, err := json.Marshal(t)
	if err != nil {
		return errors.Wrapf(err, "encoding target %q", t.Name)
	}

	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(address, strconv.Itoa(port)),
		Path:   path,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building registration request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := s.client.Do(req)
	if err != nil {
		return &RegistrationError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &RegistrationError{
		StatusCode: resp.StatusCode,
		Message:    responseMessage(resp.StatusCode, data),
	}
}

// responseMessage extracts the operator-facing reason from an error body.
// JSON bodies with an "error" or "message" string are unwrapped; anything
// else is used as text. An empty body falls back to the status text.
func responseMessage(status int, body []byte) string {
	text := strings.TrimSpace(string(body))

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(text), &payload) == nil {
		switch {
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		}
	}

	if text != "" {
		return text
	}
	if st := http.StatusText(status); st != "" {
		return st
	}
	return "registration failed with status " + strconv.Itoa(status)
}
