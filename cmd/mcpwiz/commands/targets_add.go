package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
	"github.com/mcp-proxy/mcp-proxy/internal/wizard"
)

// addOptions holds the flag values of targets add.
type addOptions struct {
	category string
	kind     string
	name     string
	cmd      string
	args     []string
	host     string
	port     string
	path     string
}

var addOpts addOptions

func init() {
	f := targetsAddCmd.Flags()
	f.StringVar(&addOpts.category, "category", string(target.CategoryMCP), "registration category: mcp, a2a")
	f.StringVar(&addOpts.kind, "kind", "", "target kind: stdio, sse, openapi, a2a (default: first kind of the category)")
	f.StringVar(&addOpts.name, "name", "", "target name")
	f.StringVar(&addOpts.cmd, "cmd", "", "command to launch (stdio)")
	f.StringArrayVar(&addOpts.args, "arg", nil, "command argument, repeatable (stdio)")
	f.StringVar(&addOpts.host, "host", "", "target host (sse, openapi, a2a)")
	f.StringVar(&addOpts.port, "port", "", "target port (sse, openapi, a2a)")
	f.StringVar(&addOpts.path, "path", "", "endpoint path (sse, a2a)")
	targetsCmd.AddCommand(targetsAddCmd)
}

var targetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a target with the proxy and add it to the document",
	Long: `Validate a target, register it with the running proxy, and append it to
the configuration document.

The target is written to the document only after the proxy accepted it. The
registration is attempted once; on failure nothing is written.`,
	Example: `  # SSE server
  mcpwiz targets add --kind sse --name web --host 10.0.0.5 --port 8080 --path /mcp

  # OpenAPI service
  mcpwiz targets add --kind openapi --name pets --host petstore --port 80`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		return runTargetsAdd(cmd.Context(), cmd.OutOrStdout(), cfg, addOpts)
	},
}

// draft converts the flag values into a target draft.
func (o addOptions) draft() (*target.Draft, error) {
	category := target.Category(o.category)
	if !category.Valid() {
		return nil, errors.NewUserError(
			errors.Newf("unknown category %q", o.category),
			"Use --category mcp or --category a2a")
	}
	d := target.NewDraft(category)
	if o.kind != "" {
		d.Kind = target.Kind(o.kind)
	}
	d.Name = o.name
	d.Cmd = o.cmd
	d.Args = o.args
	d.Host = o.host
	d.Port = o.port
	d.Path = o.path
	return d, nil
}

func runTargetsAdd(ctx context.Context, w io.Writer, cfg *config.Config, opts addOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	d, err := opts.draft()
	if err != nil {
		return err
	}

	ctrl, err := newController(cfg, nil, wizard.StepTargets)
	if err != nil {
		return err
	}

	res := ctrl.AddTarget(ctx, d)
	printIssues(w, res.Warnings)
	if res.Err != nil {
		return addFailure(w, cfg, res.Err)
	}

	if err := proxyconfig.Save(ctx, cfg.Document, ctrl.Document()); err != nil {
		// The proxy already has the target; say so before failing.
		fmt.Fprintf(w, "Target %q was registered with the proxy but the document could not be written.\n", res.Target.Name)
		return errors.NewSystemError(err, "Check permissions on "+cfg.Document)
	}

	fmt.Fprintf(w, "%s Added target %q (%s) at position %d\n",
		okColor.Sprint("✓"), res.Target.Name, kindBadge(target.Classify(res.Target)), res.Index)
	return nil
}
