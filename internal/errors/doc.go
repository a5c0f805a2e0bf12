// Package errors provides error handling conventions for the mcpwiz CLI.
//
// It re-exports the wrapping helpers of github.com/cockroachdb/errors,
// defines sentinel errors for common failure conditions, and an ExitError
// type carrying a process exit code.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, mcpwizerrors.ErrInvalidConfig) {
//	    // config.yaml or MCPWIZ_* needs fixing
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, etc.)
//   - ExitSystem (2): System-related error (I/O, network, registration service)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. Use [ExitCode] to resolve the code for os.Exit:
//
//	err := mcpwizerrors.NewUserError(mcpwizerrors.ErrInvalidTarget, "Fix the fields listed above")
//	os.Exit(mcpwizerrors.ExitCode(err))
package errors
