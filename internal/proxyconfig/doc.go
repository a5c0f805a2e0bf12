// Package proxyconfig holds the proxy configuration document the setup
// wizard builds.
//
// A [Config] is an ordered list of targets plus every other top-level
// setting of the document (listener, type and so on). Those other settings
// are owned elsewhere; they are carried through load and save untouched.
//
// Targets have no identity other than their position. [Config.RemoveAt]
// removes by index and assumes a single editor.
//
// Documents are read and written as JSON, YAML or TOML depending on the file
// extension. Writes are atomic.
package proxyconfig
