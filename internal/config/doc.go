// Package config loads mcpwiz's own settings.
//
// Settings come from config.yaml in the working directory or in
// $XDG_CONFIG_HOME/mcpwiz (see [paths.ConfigDir]), from MCPWIZ_* environment
// variables, and from defaults:
//
//	server:
//	  address: 0.0.0.0   # proxy admin listener
//	  port: 19000
//	registration:
//	  timeout: 10s
//	document: mcp-proxy.json
//	metrics:
//	  address: ""        # e.g. 127.0.0.1:9091 to expose /metrics during setup
//
// Command-line flags bound by the CLI take precedence over all of these.
//
// This package is distinct from the proxy configuration document the wizard
// produces; that lives in internal/proxyconfig.
package config
