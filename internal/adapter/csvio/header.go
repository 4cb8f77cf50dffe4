package csvio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InjectHeader prepends the column header row to a finished results file.
// The pipelines emit unheadered rows; this pass runs after a batch completes
// so partial runs never leave a headered-but-truncated file behind. The
// rewrite goes through a temp file in the same directory and renames over the
// original, so readers never observe a half-written file.
//
// Calling it twice is safe: a file already starting with the header is left
// untouched.
func InjectHeader(path string, columns []string) error {
	header := strings.Join(columns, ",")

	body, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}
	if strings.HasPrefix(string(body), header+"\n") || string(body) == header {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.WriteString(header + "\n")
	if err == nil {
		_, err = tmp.Write(body)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write headered file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace results: %w", err)
	}
	return nil
}
