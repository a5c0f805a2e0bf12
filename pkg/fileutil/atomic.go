// Package fileutil provides file system utilities including atomic,
// format-aware writes of configuration documents.
package fileutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

// Format identifies a document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for formats other than json, yaml and toml.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatFromPath picks a format from the file extension.
// Unrecognized or missing extensions map to FormatJSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Marshal encodes v in the given format with a trailing newline.
func Marshal(format Format, v any) (data []byte, err error) {
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "marshaling JSON")
		}
	case FormatYAML:
		// yaml.Marshal panics on unmarshalable types
		defer func() {
			if r := recover(); r != nil {
				err = errors.Newf("marshaling YAML: %v", r)
			}
		}()
		data, err = yaml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling YAML")
		}
	case FormatTOML:
		data, err = toml.Marshal(v)
		if err != nil {
			return nil, errors.Wrap(err, "marshaling TOML")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

// Unmarshal decodes data in the given format into v.
func Unmarshal(format Format, data []byte, v any) error {
	switch format {
	case FormatJSON:
		return errors.Wrap(json.Unmarshal(data, v), "unmarshaling JSON")
	case FormatYAML:
		return errors.Wrap(yaml.Unmarshal(data, v), "unmarshaling YAML")
	case FormatTOML:
		return errors.Wrap(toml.Unmarshal(data, v), "unmarshaling TOML")
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// Interrupted writes leave the original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, ".mcpwiz-atomic-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}

// AtomicWrite encodes v in the format implied by path's extension and
// writes it atomically with 0644 permissions.
func AtomicWrite(path string, v any) error {
	data, err := Marshal(FormatFromPath(path), v)
	if err != nil {
		return err
	}
	return AtomicWriteFile(path, data, 0644)
}
