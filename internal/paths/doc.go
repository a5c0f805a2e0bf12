// Package paths resolves the directories mcpwiz reads configuration from.
//
// It wraps github.com/adrg/xdg for XDG Base Directory compliance, so the
// default config directory is ~/.config/mcpwiz on Linux and the platform
// equivalent elsewhere. MCPWIZ_CONFIG_DIR overrides it, which tests use to
// isolate themselves from the user's real configuration.
package paths
