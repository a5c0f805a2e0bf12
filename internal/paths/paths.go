package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user configuration directory.
const AppName = "mcpwiz"

// ConfigDirEnv overrides the configuration directory when set.
const ConfigDirEnv = "MCPWIZ_CONFIG_DIR"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// resolveHome returns the user's home directory or ErrHomeDirNotFound.
func resolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "resolving home directory"), ErrHomeDirNotFound)
	}
	if home == "" {
		return "", ErrHomeDirNotFound
	}
	return home, nil
}

// ConfigHome returns the XDG config home (~/.config on Linux).
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory searched for mcpwiz's config.yaml.
// MCPWIZ_CONFIG_DIR takes precedence over the XDG location.
func ConfigDir() string {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := resolveHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
