package fileutil

import (
	"fmt"
	"io"
	"os"

	"github.com/mcp-proxy/mcp-proxy/internal/errors"
)

// MaxFileSize is the limit used when ReadFileWithLimit is given none (1MB).
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge marks every *SizeError.
var ErrFileTooLarge = errors.New("file too large")

// SizeError reports a file holding more than the allowed number of bytes.
type SizeError struct {
	Path  string
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("%s exceeds the %d byte limit", e.Path, e.Limit)
}

// ReadFileWithLimit reads path, refusing files larger than limit bytes.
// A limit of zero or less means MaxFileSize. Oversized files yield a
// *SizeError marked with ErrFileTooLarge.
func ReadFileWithLimit(path string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxFileSize
	}
	tooLarge := func() error {
		return errors.Mark(&SizeError{Path: path, Limit: limit}, ErrFileTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Stat lets regular files fail before reading; pipes and the like are
	// caught by the bounded read below.
	if info, err := f.Stat(); err == nil && info.Mode().IsRegular() && info.Size() > limit {
		return nil, tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, tooLarge()
	}
	return data, nil
}
