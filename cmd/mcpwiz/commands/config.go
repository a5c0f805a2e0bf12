package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mcp-proxy/mcp-proxy/internal/config"
	"github.com/mcp-proxy/mcp-proxy/internal/editor"
	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/paths"
	"github.com/mcp-proxy/mcp-proxy/pkg/fileutil"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective mcpwiz configuration",
	Long: `Show the configuration after applying config.yaml, MCPWIZ_* environment
variables and command-line flags.`,
	Example: `  # Show all values
  mcpwiz config

  # Show one value
  mcpwiz config get server.port

See Also: mcpwiz setup`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), cfg)
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  `Get a single configuration value by key, using dot notation for nested keys.`,
	Example: `  mcpwiz config get server.address
  mcpwiz config get registration.timeout`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigGet(cmd.OutOrStdout(), args[0])
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in your editor",
	Long: `Open config.yaml in $EDITOR (or $VISUAL).

If no configuration file exists yet, one is created in
$XDG_CONFIG_HOME/mcpwiz with the current effective values.`,
	Example: `  mcpwiz config edit
  EDITOR="code --wait" mcpwiz config edit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadedConfig()
		if err != nil {
			return err
		}
		path, err := ensureConfigFile(cfg)
		if err != nil {
			return errors.NewSystemError(err, "Check permissions on "+paths.ConfigDir())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Location: %s\n", path)
		return editor.Open(cmd.Context(), path, editor.Streams{
			In:  cmd.InOrStdin(),
			Out: cmd.OutOrStdout(),
			Err: cmd.ErrOrStderr(),
		})
	},
}

// ensureConfigFile returns the config file in use, writing cfg to the
// default location first when there is none.
func ensureConfigFile(cfg *config.Config) (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used, nil
		}
	}

	dir := paths.ConfigDir()
	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := paths.EnsureDir(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating %s", dir)
	}
	var buf bytes.Buffer
	if err := writeYAML(&buf, cfg); err != nil {
		return "", err
	}
	if err := fileutil.AtomicWriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func runConfigGet(w io.Writer, key string) error {
	if !viper.IsSet(key) {
		keys := viper.AllKeys()
		sort.Strings(keys)
		return errors.NewUserError(errors.Newf("unknown key %q", key),
			fmt.Sprintf("Known keys: %v", keys))
	}
	fmt.Fprintln(w, viper.Get(key))
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrap(enc.Close(), "encoding config")
}
