package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:     "targets",
	Aliases: []string{"target"},
	Short:   "Manage proxy targets",
	Long: `Add, list and remove the targets in the configuration document.

Adding a target registers it with the running proxy first and records it in
the document only if the proxy accepted it. Removing a target edits the
document only.`,
	Example: `  # Register a local stdio server
  mcpwiz targets add --kind stdio --name github --cmd npx --arg -y --arg @modelcontextprotocol/server-github

  # Register an A2A agent
  mcpwiz targets add --category a2a --name planner --host planner.internal --port 9000 --path /a2a

  # List targets
  mcpwiz targets list

  See Also: mcpwiz setup`,
}
