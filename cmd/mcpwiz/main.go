// Package main is the entry point for the mcpwiz CLI.
package main

import (
	"fmt"
	"os"

	"github.com/mcp-proxy/mcp-proxy/cmd/mcpwiz/commands"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var exitErr *errors.ExitError
		if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "  %s\n", exitErr.Suggestion)
		}
		os.Exit(errors.ExitCode(err))
	}
}
