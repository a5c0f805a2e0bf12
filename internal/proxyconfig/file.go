package proxyconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
	"github.com/mcp-proxy/mcp-proxy/internal/logging"
	"github.com/mcp-proxy/mcp-proxy/internal/paths"
	"github.com/mcp-proxy/mcp-proxy/pkg/fileutil"
)

// MaxDocumentSize bounds the documents Load accepts. A document with a few
// hundred targets is well under it.
const MaxDocumentSize = 1024 * 1024

// Load reads the document at path. The format follows the file extension.
// An empty file yields an empty document. Documents over MaxDocumentSize
// fail with an error matching fileutil.ErrFileTooLarge.
func Load(path string) (*Config, error) {
	data, err := fileutil.ReadFileWithLimit(path, MaxDocumentSize)
	if err != nil {
		return nil, errors.Wrapf(err, "reading document")
	}

	cfg := New()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	format := fileutil.FormatFromPath(path)
	if format == fileutil.FormatJSON {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parsing %s", path)
		}
		return cfg, nil
	}

	// YAML and TOML go through a generic map so the unknown-field handling
	// stays in one place.
	var doc map[string]any
	if err := fileutil.Unmarshal(format, data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if doc == nil {
		return cfg, nil
	}
	asJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "converting %s", path)
	}
	if err := json.Unmarshal(asJSON, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, nil
}

// LoadOrNew is like Load but returns an empty document when path does not
// exist.
func LoadOrNew(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	return Load(path)
}

// Save writes cfg to path atomically, creating the parent directory if
// needed. The format follows the file extension.
//
// TOML has no null. Null fields are left out of .toml documents and a
// warning naming them is logged through the logger in ctx.
func Save(ctx context.Context, path string, cfg *Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}

	format := fileutil.FormatFromPath(path)
	if format == fileutil.FormatJSON {
		return errors.Wrapf(fileutil.AtomicWrite(path, cfg), "writing %s", path)
	}

	doc, err := toMap(cfg)
	if err != nil {
		return errors.Wrapf(err, "converting %s", path)
	}
	if format == fileutil.FormatTOML {
		if dropped := dropNulls(doc, ""); len(dropped) > 0 {
			logging.FromContext(ctx).Warn("null fields omitted from TOML document",
				"document", path, "fields", strings.Join(dropped, ", "))
		}
	}
	return errors.Wrapf(fileutil.AtomicWrite(path, doc), "writing %s", path)
}

// dropNulls removes null values from doc in place and returns their dotted
// paths in sorted order. Null list elements are removed too.
func dropNulls(doc map[string]any, prefix string) []string {
	var dropped []string
	for k, v := range doc {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case nil:
			delete(doc, k)
			dropped = append(dropped, key)
		case map[string]any:
			dropped = append(dropped, dropNulls(x, key)...)
		case []any:
			kept := x[:0]
			for i, e := range x {
				elemKey := fmt.Sprintf("%s[%d]", key, i)
				switch ev := e.(type) {
				case nil:
					dropped = append(dropped, elemKey)
					continue
				case map[string]any:
					dropped = append(dropped, dropNulls(ev, elemKey)...)
				}
				kept = append(kept, e)
			}
			doc[k] = kept
		}
	}
	sort.Strings(dropped)
	return dropped
}

// toMap converts cfg into plain maps and slices that the YAML and TOML
// encoders accept. Whole numbers become int64 so ports stay integers.
func toMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return normalizeNumbers(doc).(map[string]any), nil
}

func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = normalizeNumbers(e)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = normalizeNumbers(e)
		}
		return x
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil && !math.IsInf(f, 0) {
			return f
		}
		return x.String()
	default:
		return v
	}
}
