// Package logging provides structured logging for the mcpwiz CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Context Propagation
//
// Commands store the configured logger in their context with [NewContext];
// library code retrieves it with [FromContext], which falls back to
// slog.Default:
//
//	logger := logging.FromContext(ctx)
//	logger.Debug("registering target", "target", name)
//
// # Command-Line Flags
//
// [Setup] turns the -v/-q, --log-format and --log-file flags into a logger.
// MCPWIZ_DEBUG raises the level when no -v flag is given, and --log-file
// receives a JSON copy of everything written to the terminal.
package logging
