// Package prompt provides line-based interactive prompts for terminals
// where a full-screen finder is not available.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
)

// Sentinel errors for target selection.
var (
	ErrNoTargets          = errors.New("no targets to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles numbered selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelectorWithIO creates a Selector reading answers from r and writing
// the listing to w.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectTarget lists targets by position and asks for one. It returns the
// chosen position (0-based).
//
// Returns:
//   - ErrNoTargets if the list is empty
//   - ErrInvalidSelection if the input is not a listed position
//   - ErrSelectionCancelled on empty input or EOF (e.g., Ctrl+D)
func (s *Selector) SelectTarget(prompt string, targets []target.Target) (int, error) {
	if len(targets) == 0 {
		return 0, ErrNoTargets
	}

	fmt.Fprintln(s.writer, prompt)
	for i, t := range targets {
		fmt.Fprintf(s.writer, "  [%d] %s (%s) %s\n", i, t.Name, target.Classify(t), t.Endpoint())
	}
	fmt.Fprint(s.writer, "Position (empty to cancel): ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		if errors.Is(err, io.EOF) {
			return 0, ErrSelectionCancelled
		}
		return 0, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Removal is destructive, so there is no default choice.
	if input == "" {
		return 0, ErrSelectionCancelled
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 0 || selection >= len(targets) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [0-%d]", selection, len(targets)-1)
	}

	return selection, nil
}
