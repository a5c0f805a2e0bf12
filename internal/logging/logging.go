package logging

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// DebugEnv raises the level when no -v flag is given: "1" or "true" for
// debug, "2" for trace.
const DebugEnv = "MCPWIZ_DEBUG"

// ErrQuietVerbose is returned when both --quiet and --verbose are set.
var ErrQuietVerbose = errors.New("--quiet and --verbose cannot be combined")

// Config describes a logger with an explicit level.
type Config struct {
	// Level sets the minimum log level. Messages below this level are discarded.
	Level slog.Level
	// Format specifies the output format (text or JSON).
	Format Format
	// Output is where log messages are written. Defaults to os.Stderr if nil.
	Output io.Writer
}

// New creates a logger with the given configuration.
// Unrecognized formats fall back to FormatText.
func New(cfg Config) *slog.Logger {
	return slog.New(newHandler(cfg.Format, cfg.Output, cfg.Level))
}

func newHandler(format Format, out io.Writer, level slog.Level) slog.Handler {
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	if format == FormatJSON {
		return slog.NewJSONHandler(out, opts)
	}
	return NewHandler(out, opts)
}

// Options mirrors the mcpwiz logging flags.
type Options struct {
	// Verbosity is the number of -v flags.
	Verbosity int
	// Quiet limits output to errors.
	Quiet bool
	// Format is the format of the terminal output.
	Format Format
	// Output receives terminal output. Defaults to os.Stderr if nil.
	Output io.Writer
	// LogFile, when set, receives a JSON copy of every record that passes
	// the level. The file is appended to.
	LogFile string
}

// Level resolves the minimum level. Quiet wins over DebugEnv; DebugEnv
// applies only when Verbosity is zero.
func (o Options) Level() (slog.Level, error) {
	if o.Quiet && o.Verbosity > 0 {
		return 0, ErrQuietVerbose
	}
	if o.Quiet {
		return slog.LevelError, nil
	}

	v := o.Verbosity
	if v == 0 {
		switch os.Getenv(DebugEnv) {
		case "1", "true":
			v = 2
		case "2":
			v = 3
		}
	}
	return LevelFromVerbosity(v), nil
}

// Setup builds the logger described by o. The returned function closes the
// log file and is never nil.
func Setup(o Options) (*slog.Logger, func() error, error) {
	level, err := o.Level()
	if err != nil {
		return nil, nil, err
	}

	primary := newHandler(o.Format, o.Output, level)
	if o.LogFile == "" {
		return slog.New(primary), func() error { return nil }, nil
	}

	f, err := os.OpenFile(o.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", o.LogFile)
	}
	file := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(newTee(primary, file)), f.Close, nil
}

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t *testing.T
}

// Write implements io.Writer by logging to the test.
func (w *testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	// t.Log adds its own newline.
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a debug-level logger that writes to the test's log output.
// Messages appear only when the test fails or when running with -v.
func ForTest(t *testing.T) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
