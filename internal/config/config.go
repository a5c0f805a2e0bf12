// Package config provides configuration management for mcpwiz using Viper.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/paths"
)

// Defaults mirror the proxy's admin listener.
const (
	DefaultServerAddress       = "0.0.0.0"
	DefaultServerPort          = 19000
	DefaultRegistrationTimeout = 10 * time.Second
	DefaultDocument            = "mcp-proxy.json"
)

// Config represents the top-level configuration structure.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" yaml:"server"`
	Registration RegistrationConfig `mapstructure:"registration" yaml:"registration"`
	Document     string             `mapstructure:"document" yaml:"document"`
	Metrics      MetricsConfig      `mapstructure:"metrics" yaml:"metrics"`
}

// ServerConfig holds the coordinates of the running proxy instance whose
// admin listener accepts target registrations.
type ServerConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
	Port    int    `mapstructure:"port" yaml:"port"`
}

// RegistrationConfig tunes calls to the registration service.
type RegistrationConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// MetricsConfig controls the optional Prometheus endpoint served during setup.
// An empty Address disables it.
type MetricsConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
}

// Init resets Viper and installs defaults, search paths and env bindings.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// MCPWIZ_SERVER_PORT overrides server.port, etc.
	viper.SetEnvPrefix("MCPWIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.address", DefaultServerAddress)
	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("registration.timeout", DefaultRegistrationTimeout)
	viper.SetDefault("document", DefaultDocument)
	viper.SetDefault("metrics.address", "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load, defaults apply
		case errors.As(err, &notFound):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig)
	}

	// document: ~/proxy.json refers to the operator's home directory.
	doc, err := paths.ExpandHome(cfg.Document)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving document %s", cfg.Document)
	}
	cfg.Document = doc

	return &cfg, nil
}
