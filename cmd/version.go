// Package cmd holds build metadata for the mcpwiz binary, injected via
// -ldflags "-X github.com/mcp-proxy/mcp-proxy/cmd.Version=...".
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
