package registration

import (
	"context"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// ErrUnknownCategory is returned when a registration is requested for a
// category other than mcp or a2a.
var ErrUnknownCategory = errors.New("unknown registration category")

// Service is the proxy's registration API.
//
// address and port identify the proxy admin listener. Implementations make
// a single attempt and return nil only when the proxy accepted the target.
type Service interface {
	CreateMCPTarget(ctx context.Context, address string, port int, t target.Target) error
	CreateA2ATarget(ctx context.Context, address string, port int, t target.Target) error
}

// RegistrationError reports a failed registration call.
type RegistrationError struct {
	// StatusCode is the HTTP status of a rejection, or 0 when the request
	// never got a response.
	StatusCode int

	// Message is the human-readable reason, taken from the response body
	// when the server provided one.
	Message string

	// Err is the transport error, if any.
	Err error
}

// Error returns the message verbatim.
func (e *RegistrationError) Error() string {
	return e.Message
}

// Unwrap returns the transport error, if any.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// Rejected reports whether the server answered and refused the target, as
// opposed to the request failing in transit.
func (e *RegistrationError) Rejected() bool {
	return e.StatusCode != 0
}
