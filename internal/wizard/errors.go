package wizard

import (
	"strings"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/target/validator"
)

// Sentinel errors for AddTarget.
var (
	// ErrRegistrationInFlight is returned when AddTarget is called while a
	// previous registration has not finished.
	ErrRegistrationInFlight = errors.New("a registration is already in progress")

	// ErrNotOnTargetsStep is returned when AddTarget is called outside the
	// targets step.
	ErrNotOnTargetsStep = errors.New("targets can only be added on the targets step")

	// ErrResultDiscarded is returned when the operator left the targets step
	// while the registration was pending.
	ErrResultDiscarded = errors.New("left the targets step before registration finished; result discarded")

	// ErrNilDraft is returned when AddTarget is called without a draft.
	ErrNilDraft = errors.New("draft is nil")
)

// InvalidDraftError reports a draft rejected by validation. No registration
// call was made.
type InvalidDraftError struct {
	Issues []*validator.ValidationError
}

func (e *InvalidDraftError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.Message)
	}
	return strings.Join(msgs, "; ")
}
