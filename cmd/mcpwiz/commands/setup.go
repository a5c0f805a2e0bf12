package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/logging"
	"github.com/mcp-proxy/mcp-proxy/internal/proxyconfig"
	"github.com/mcp-proxy/mcp-proxy/internal/target"
	"github.com/mcp-proxy/mcp-proxy/internal/wizard"
)

// errQuit ends the setup session without writing the document.
var errQuit = errors.New("setup aborted")

func init() {
	setupCmd.Flags().String("metrics-address", "", "serve Prometheus metrics on this address while the wizard runs (e.g. 127.0.0.1:9091)")
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the interactive setup wizard",
	Long: `Walk through the proxy setup steps: listener, targets, complete.

On the targets step, each target you add is registered with the running
proxy before it is recorded. When you reach the complete step the document
is written to the configured path. Quitting earlier writes nothing, although
targets already registered stay registered on the proxy.`,
	Example: `  # Use the proxy on localhost
  mcpwiz setup --server-address 127.0.0.1

  # Expose registration metrics while the wizard runs
  mcpwiz setup --metrics-address 127.0.0.1:9091`,
	Args: cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, _ []string) {
		_ = viper.BindPFlag("metrics.address", cmd.Flags().Lookup("metrics-address"))
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		if addr := viper.GetString("metrics.address"); addr != "" {
			cfg.Metrics.Address = addr
		}
		return runSetup(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	},
}

func runSetup(ctx context.Context, in io.Reader, w io.Writer, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Address != "" {
		stop, err := serveMetrics(cfg.Metrics.Address, reg, logger)
		if err != nil {
			return errors.NewUserError(err, "Choose a free address for --metrics-address")
		}
		defer stop()
	}

	ctrl, err := newController(cfg, reg, wizard.StepListener)
	if err != nil {
		return err
	}

	s := &setupSession{
		ctrl: ctrl,
		cfg:  cfg,
		in:   bufio.NewScanner(in),
		w:    w,
	}
	if err := s.run(ctx); err != nil {
		if errors.Is(err, errQuit) {
			fmt.Fprintln(w, "Setup aborted; the document was not written.")
			return nil
		}
		return err
	}

	if err := proxyconfig.Save(ctx, cfg.Document, ctrl.Document()); err != nil {
		return errors.NewSystemError(err, "Check permissions on "+cfg.Document)
	}
	fmt.Fprintf(w, "%s Wrote %d target(s) to %s\n", okColor.Sprint("✓"), len(ctrl.Targets()), cfg.Document)
	return nil
}

// serveMetrics starts a /metrics endpoint for reg and returns a function that
// shuts it down.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(), error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	// Surface bind errors before the wizard starts.
	select {
	case err := <-errCh:
		return nil, errors.Wrapf(err, "serving metrics on %s", addr)
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info("serving metrics", "address", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("stopping metrics server", "error", err)
		}
	}, nil
}

// setupSession is the line-oriented front end of a wizard.Controller.
type setupSession struct {
	ctrl *wizard.Controller
	cfg  *config.Config
	in   *bufio.Scanner
	w    io.Writer
}

// prompt prints label and reads one trimmed line. EOF quits.
func (s *setupSession) prompt(label string) (string, error) {
	fmt.Fprint(s.w, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", errors.Wrap(err, "reading input")
		}
		return "", errQuit
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptDefault is prompt with a value used when the answer is empty.
func (s *setupSession) promptDefault(label, def string) (string, error) {
	answer, err := s.prompt(fmt.Sprintf("%s [%s]: ", label, def))
	if err != nil || answer != "" {
		return answer, err
	}
	return def, nil
}

func (s *setupSession) run(ctx context.Context) error {
	for {
		var err error
		switch step := s.ctrl.Step(); step {
		case wizard.StepListener:
			err = s.listenerStep()
		case wizard.StepTargets:
			err = s.targetsStep(ctx)
		case wizard.StepComplete:
			return nil
		default:
			return errors.Newf("unexpected step %s", step)
		}
		if err != nil {
			return err
		}
	}
}

func (s *setupSession) listenerStep() error {
	fmt.Fprintln(s.w, "Step 1/3: listener")
	doc := s.ctrl.Document()
	if raw, ok := doc.Field("listener"); ok {
		fmt.Fprintf(s.w, "  Listener from %s: %s\n", s.cfg.Document, raw)
	} else {
		fmt.Fprintln(s.w, "  No listener configured in the document; the proxy defaults apply.")
	}

	answer, err := s.prompt("[n]ext, [q]uit: ")
	if err != nil {
		return err
	}
	switch strings.ToLower(answer) {
	case "", "n", "next":
		s.ctrl.Next()
	case "q", "quit":
		return errQuit
	default:
		fmt.Fprintf(s.w, "Unknown choice %q\n", answer)
	}
	return nil
}

func (s *setupSession) targetsStep(ctx context.Context) error {
	fmt.Fprintf(s.w, "Step 2/3: targets (proxy admin listener %s)\n", serverLabel(s.cfg))
	s.printTargets()

	answer, err := s.prompt("[a]dd, [r]emove <position>, [n]ext, [b]ack, [q]uit: ")
	if err != nil {
		return err
	}
	fields := strings.Fields(strings.ToLower(answer))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "a", "add":
		return s.addTarget(ctx)
	case "r", "remove", "rm":
		if len(fields) < 2 {
			fmt.Fprintln(s.w, "Give the position to remove, e.g. 'remove 0'")
			return nil
		}
		idx, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintf(s.w, "Invalid position %q\n", fields[1])
			return nil
		}
		removed, err := s.ctrl.RemoveTarget(ctx, idx)
		if err != nil {
			fmt.Fprintf(s.w, "%s %v\n", errorBadge(), err)
			return nil
		}
		fmt.Fprintf(s.w, "Removed %q. It remains registered on the proxy.\n", removed.Name)
	case "n", "next":
		s.ctrl.Next()
	case "b", "back":
		s.ctrl.Previous()
	case "q", "quit":
		return errQuit
	default:
		fmt.Fprintf(s.w, "Unknown choice %q\n", answer)
	}
	return nil
}

func (s *setupSession) printTargets() {
	targets := s.ctrl.Targets()
	if len(targets) == 0 {
		fmt.Fprintln(s.w, "  No targets yet.")
		return
	}
	for i, t := range targets {
		fmt.Fprintf(s.w, "  %d  %-20s %-8s %s\n", i, t.Name, kindBadge(target.Classify(t)), t.Endpoint())
	}
}

// readDraft asks for the fields the chosen kind needs.
func (s *setupSession) readDraft() (*target.Draft, error) {
	cat, err := s.promptDefault("Category (mcp, a2a)", string(target.CategoryMCP))
	if err != nil {
		return nil, err
	}
	d := target.NewDraft(target.Category(cat))
	if !d.Category.Valid() {
		fmt.Fprintf(s.w, "Unknown category %q\n", cat)
		return nil, nil
	}

	if kinds := d.Category.Kinds(); len(kinds) > 1 {
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = string(k)
		}
		kind, err := s.promptDefault("Kind ("+strings.Join(names, ", ")+")", string(d.Kind))
		if err != nil {
			return nil, err
		}
		d.Kind = target.Kind(kind)
	}

	if d.Name, err = s.prompt("Name: "); err != nil {
		return nil, err
	}

	switch d.Kind {
	case target.KindStdio:
		if d.Cmd, err = s.prompt("Command: "); err != nil {
			return nil, err
		}
		line, err := s.prompt("Arguments (shell quoting allowed): ")
		if err != nil {
			return nil, err
		}
		// No env or backtick expansion: the proxy runs the command, not this shell.
		args, err := shellwords.Parse(line)
		if err != nil {
			fmt.Fprintf(s.w, "Invalid arguments: %v\n", err)
			return nil, nil
		}
		d.Args = args
	default:
		if d.Host, err = s.prompt("Host: "); err != nil {
			return nil, err
		}
		if d.Port, err = s.prompt("Port: "); err != nil {
			return nil, err
		}
		if d.Kind != target.KindOpenAPI {
			if d.Path, err = s.prompt("Path: "); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

func (s *setupSession) addTarget(ctx context.Context) error {
	d, err := s.readDraft()
	if err != nil || d == nil {
		return err
	}

	fmt.Fprintf(s.w, "Registering %q with %s...\n", d.Name, serverLabel(s.cfg))
	res := s.ctrl.AddTarget(ctx, d)
	printIssues(s.w, res.Warnings)

	if res.Err != nil {
		var invalid *wizard.InvalidDraftError
		if errors.As(res.Err, &invalid) {
			printIssues(s.w, invalid.Issues)
		} else {
			fmt.Fprintf(s.w, "%s %s\n", errorBadge(), res.Err.Error())
		}
		return nil
	}

	fmt.Fprintf(s.w, "%s Added %q at position %d\n", okColor.Sprint("✓"), res.Target.Name, res.Index)
	return nil
}
