package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/mcp-proxy/mcp-proxy/internal/cli/prompt"
	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/logging"
	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
	"github.com/mcp-proxy/mcp-proxy/internal/wizard"
)

func init() {
	targetsCmd.AddCommand(targetsRemoveCmd)
}

var targetsRemoveCmd = &cobra.Command{
	Use:     "remove [position]",
	Aliases: []string{"rm"},
	Short:   "Remove a target from the configuration document",
	Long: `Remove the target at the given position from the configuration document.

Without a position, an interactive finder lets you pick the target. When
input is not a terminal, the targets are listed and a position is read from
standard input.

The running proxy is not changed: a target it already accepted stays
registered until the proxy is restarted with the updated document.`,
	Example: `  # Remove the first target
  mcpwiz targets remove 0

  # Pick interactively
  mcpwiz targets remove`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}

		index := -1
		if len(args) == 1 {
			index, err = strconv.Atoi(args[0])
			if err != nil {
				return errors.NewUserError(errors.Newf("invalid position %q", args[0]),
					"Use the position shown by 'mcpwiz targets list'")
			}
		}

		pick := pickTarget
		if !logging.Interactive(cmd.InOrStdin(), cmd.OutOrStdout()) {
			pick = numberedPicker(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return runTargetsRemove(cmd.Context(), cmd.OutOrStdout(), cfg, index, pick)
	},
}

// picker chooses a target interactively and returns its position.
// ok is false when the operator aborted.
type picker func(targets []target.Target) (index int, ok bool, err error)

// pickTarget opens a fuzzy finder over targets.
func pickTarget(targets []target.Target) (int, bool, error) {
	idx, err := fuzzyfinder.Find(
		targets,
		func(i int) string {
			return fmt.Sprintf("%d: %s (%s)", i, targets[i].Name, target.Classify(targets[i]))
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			t := targets[i]
			return fmt.Sprintf("Name: %s\nKind: %s\nEndpoint: %s", t.Name, target.Classify(t), t.Endpoint())
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "interactive selection failed")
	}
	return idx, true, nil
}

// numberedPicker asks for a position on a plain line, for input that is not
// a terminal.
func numberedPicker(in io.Reader, out io.Writer) picker {
	return func(targets []target.Target) (int, bool, error) {
		idx, err := prompt.NewSelectorWithIO(in, out).SelectTarget("Remove which target?", targets)
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return 0, false, nil
		}
		if err != nil {
			return 0, false, errors.NewUserError(err, "Use the position shown by 'mcpwiz targets list'")
		}
		return idx, true, nil
	}
}

// runTargetsRemove removes the target at index, or asks pick for one when
// index is negative.
func runTargetsRemove(ctx context.Context, w io.Writer, cfg *config.Config, index int, pick picker) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl, err := newController(cfg, nil, wizard.StepTargets)
	if err != nil {
		return err
	}

	if index < 0 {
		targets := ctrl.Targets()
		if len(targets) == 0 {
			fmt.Fprintf(w, "No targets in %s\n", cfg.Document)
			return nil
		}
		var ok bool
		index, ok, err = pick(targets)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	removed, err := ctrl.RemoveTarget(ctx, index)
	if err != nil {
		return errors.NewUserError(err, "Use the position shown by 'mcpwiz targets list'")
	}

	if err := proxyconfig.Save(ctx, cfg.Document, ctrl.Document()); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+cfg.Document)
	}

	fmt.Fprintf(w, "%s Removed target %q from %s\n", okColor.Sprint("✓"), removed.Name, cfg.Document)
	fmt.Fprintln(w, dimColor.Sprintf("  It remains registered on the proxy at %s; unregistering is not supported.", serverLabel(cfg)))
	return nil
}
