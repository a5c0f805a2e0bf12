// Package commands implements the CLI commands for mcpwiz.
package commands

import (
	"context"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mcp-proxy/mcp-proxy/cmd"
	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configFile holds the value of the --config flag.
var configFile string

// appConfig is the configuration loaded before any command runs.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// flagBindings maps config keys to the persistent flags that override them.
var flagBindings = map[string]string{
	"server.address": "server-address",
	"server.port":    "server-port",
	"document":       "document",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default: ./config.yaml or $XDG_CONFIG_HOME/mcpwiz/config.yaml)")
	pf.String("server-address", "", "address of the proxy admin listener (default 0.0.0.0)")
	pf.Int("server-port", 0, "port of the proxy admin listener (default 19000)")
	pf.String("document", "", "configuration document to edit (default mcp-proxy.json)")
	pf.CountVarP(&verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text", "log format: text, json")
	pf.StringVar(&logFile, "log-file", "", "write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("mcpwiz version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	for key, name := range flagBindings {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
	appConfig, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "mcpwiz",
	Short: "Set up an MCP proxy and register its targets",
	Long: `mcpwiz walks through setting up an MCP proxy.

Targets are the downstream endpoints the proxy forwards to: local stdio
processes, remote SSE servers, OpenAPI services and A2A agents. Each target
is validated, registered with the running proxy through its admin listener,
and then recorded in the configuration document.

Removing a target only edits the document. The running proxy keeps every
target it accepted.`,
	Example: `  # Run the interactive setup wizard
  mcpwiz setup

  # Register an SSE target with the proxy on localhost
  mcpwiz targets add --kind sse --name web --host 10.0.0.5 --port 8080 --path /mcp \
    --server-address 127.0.0.1

  # Show the targets in the document
  mcpwiz targets list

  See Also: mcpwiz setup, mcpwiz targets, mcpwiz config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		if configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// closeLogFile releases the --log-file handle opened by setupLogging.
var closeLogFile = func() error { return nil }

// setupLogging installs the logger described by the logging flags as the
// default and in the command's context.
func setupLogging(cmd *cobra.Command) error {
	logger, closeLog, err := logging.Setup(logging.Options{
		Verbosity: verbosity,
		Quiet:     quiet,
		Format:    logging.Format(logFormat),
		Output:    cmd.ErrOrStderr(),
		LogFile:   logFile,
	})
	switch {
	case errors.Is(err, logging.ErrQuietVerbose):
		return errors.NewUserError(err, "Pass either --quiet or --verbose")
	case err != nil:
		return errors.NewUserError(err, "Check the --log-file path")
	}
	_ = closeLogFile()
	closeLogFile = closeLog

	// Badges in command output follow the same color rules as the logs.
	color.NoColor = !logging.SupportsColor(cmd.OutOrStdout())

	slog.SetDefault(logger)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// loadedConfig returns the configuration loaded at startup, falling back to
// defaults when commands are run without going through Execute.
func loadedConfig() (*config.Config, error) {
	if configLoadErr != nil {
		return nil, errors.NewConfigError(configLoadErr)
	}
	if appConfig == nil {
		config.Init()
		return config.Load("")
	}
	return appConfig, nil
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = closeLogFile() }()
	return rootCmd.Execute()
}
