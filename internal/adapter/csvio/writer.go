package csvio

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jrendon/weather-aggregation/internal/domain"
)

// FileSink writes terminal records as unheadered, comma-joined lines.
// It implements both pipeline.TemperatureSink and pipeline.SeasonalSink;
// a given sink instance only ever receives one record shape.
type FileSink struct {
	f *os.File
	w *bufio.Writer
}

// NewFileSink creates (truncating) the output file at path.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &FileSink{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteTemperature appends one final temperature row.
func (s *FileSink) WriteTemperature(_ context.Context, row domain.FinalTemperatureRow) error {
	return s.writeRow(row.Fields())
}

// WriteSeasonal appends one seasonal precipitation record.
func (s *FileSink) WriteSeasonal(_ context.Context, stat domain.SeasonalPrecipitationStat) error {
	return s.writeRow(stat.Fields())
}

func (s *FileSink) writeRow(fields []string) error {
	if _, err := s.w.WriteString(strings.Join(fields, ",")); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (s *FileSink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return s.f.Close()
}
