// Package csvio adapts local CSV files to the pipeline's source and sink
// interfaces and carries the post-run header injection pass.
package csvio

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

// FileSource streams the lines of one input file.
// It implements pipeline.LineSource.
type FileSource struct {
	path string
}

// NewFileSource creates a source over the file at path. The file is opened
// lazily on each Lines call so a source can be reused across runs.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Lines sends every line of the file to out, stopping early on context
// cancellation. The channel stays open; the caller owns its lifecycle.
func (s *FileSource) Lines(ctx context.Context, out chan<- string) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// Observation rows are short, but a concatenated file may carry long
	// stray lines; allow up to 1 MiB before giving up on a line.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- scanner.Text():
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}
