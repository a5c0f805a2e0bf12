package registration

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/logging"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// Client registers targets through a Service.
type Client struct {
	service Service
	metrics *Metrics
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMetrics records each call in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger. Without it the logger is taken from the
// call's context.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client backed by svc.
func NewClient(svc Service, opts ...Option) *Client {
	c := &Client{service: svc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register submits t to the proxy at address:port.
//
// The category, not the shape of t, selects the operation: mcp calls
// CreateMCPTarget and a2a calls CreateA2ATarget. Exactly one call is made.
func (c *Client) Register(ctx context.Context, address string, port int, category target.Category, t target.Target) error {
	var call func(context.Context, string, int, target.Target) error
	switch category {
	case target.CategoryMCP:
		call = c.service.CreateMCPTarget
	case target.CategoryA2A:
		call = c.service.CreateA2ATarget
	default:
		return errors.Wrapf(ErrUnknownCategory, "%q", category)
	}

	logger := c.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	kind := target.Classify(t)
	if !t.WellFormed() {
		logger.Warn("registering target with inconsistent shape",
			"target", t.Name,
			"populated", t.Populated(),
			"classified_as", kind)
	}

	logger = logger.With(
		"target", t.Name,
		"category", string(category),
		"kind", string(kind),
		"server", address,
		"port", port,
	)
	logger.Debug("registering target", "endpoint", t.Endpoint())

	start := time.Now()
	err := call(ctx, address, port, t)
	elapsed := time.Since(start)

	result := ResultSuccess
	if err != nil {
		result = ResultTransport
		var regErr *RegistrationError
		if errors.As(err, &regErr) && regErr.Rejected() {
			result = ResultRejected
		}
		logger.Warn("registration failed", "result", result, "error", err, "duration", elapsed)
	} else {
		logger.Info("target registered", "duration", elapsed)
	}
	c.metrics.observe(string(category), string(kind), result, elapsed)

	return err
}
