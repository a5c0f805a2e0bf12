package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
	"github.com/mcp-proxy/mcp-proxy/internal/target/validator"
)

var listJSON bool

func init() {
	targetsListCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	targetsCmd.AddCommand(targetsListCmd)
}

var targetsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the targets in the configuration document",
	Long: `List the targets in the configuration document in order.

The position shown is the index used by 'mcpwiz targets remove'. Targets
whose shape is ambiguous are flagged; their kind is inferred in the order
stdio, sse, openapi, a2a.`,
	Example: `  # Table output
  mcpwiz targets list

  # JSON output, with any problems under "issues"
  mcpwiz targets list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		return runTargetsList(cmd.OutOrStdout(), cfg, listJSON)
	},
}

// listJSONOutput is the document written by 'targets list --json'.
type listJSONOutput struct {
	Targets []targetJSON      `json:"targets"`
	Issues  []validator.Issue `json:"issues"`
}

// targetJSON is a target row in JSON output.
type targetJSON struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Endpoint string `json:"endpoint"`
}

func runTargetsList(w io.Writer, cfg *config.Config, asJSON bool) error {
	doc, err := loadDocument(cfg)
	if err != nil {
		return err
	}
	targets := doc.Targets()
	issues := validator.New().ValidateTargets(targets)

	if asJSON {
		out := listJSONOutput{
			Targets: make([]targetJSON, len(targets)),
			Issues:  validator.Issues(issues),
		}
		for i, t := range targets {
			out.Targets[i] = targetJSON{
				Index:    i,
				Name:     t.Name,
				Kind:     string(target.Classify(t)),
				Endpoint: t.Endpoint(),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "encoding JSON output")
	}

	if len(targets) == 0 {
		fmt.Fprintf(w, "No targets in %s\n", cfg.Document)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tKIND\tENDPOINT")
	for i, t := range targets {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, t.Name, kindBadge(target.Classify(t)), t.Endpoint())
	}
	if err := tw.Flush(); err != nil {
		return errors.Wrap(err, "writing table")
	}

	if len(issues) > 0 {
		fmt.Fprintln(w)
		printIssues(w, issues)
	}
	return nil
}
