// Package pipeline runs the two-stage grouping-and-reduction dataflows that
// turn raw daily observations into monthly and seasonal statistics.
//
// Each pipeline is a batch over its whole input: a parallel parse-and-group
// map phase, a barrier once every line is consumed, a pure fold per key, a
// regroup under a derived key, and a second fold feeding the sink. Malformed
// records are counted and dropped, never fatal; only source or sink I/O
// failures abort a run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jrendon/weather-aggregation/internal/domain"
	"github.com/jrendon/weather-aggregation/internal/observability"
)

// clock is a package-level time source so tests can freeze run durations.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// LineSource streams raw input lines into out. Implementations must return
// only after every line has been sent or the context is cancelled; they must
// not close out.
type LineSource interface {
	Lines(ctx context.Context, out chan<- string) error
}

// TemperatureSink receives terminal temperature rows in emission order.
type TemperatureSink interface {
	WriteTemperature(ctx context.Context, row domain.FinalTemperatureRow) error
}

// SeasonalSink receives terminal seasonal precipitation records in emission order.
type SeasonalSink interface {
	WriteSeasonal(ctx context.Context, stat domain.SeasonalPrecipitationStat) error
}

// Summary reports what happened to one pipeline run. Drop counts are exposed
// here and as Prometheus counters; a dropped record never aborts the batch.
type Summary struct {
	Pipeline    string
	LinesRead   int
	Parsed      int
	Dropped     map[domain.Reason]int
	MonthKeys   int
	RowsWritten int
	Duration    time.Duration
}

// TotalDropped sums drops across all taxonomy reasons.
func (s Summary) TotalDropped() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

// LogTo writes the run summary at info level.
func (s Summary) LogTo(logger *slog.Logger) {
	logger.Info("pipeline run complete",
		"pipeline", s.Pipeline,
		"lines_read", s.LinesRead,
		"records_parsed", s.Parsed,
		"records_dropped", s.TotalDropped(),
		"month_keys", s.MonthKeys,
		"rows_written", s.RowsWritten,
		"duration", s.Duration,
	)
	for reason, n := range s.Dropped {
		logger.Warn("dropped records", "pipeline", s.Pipeline, "reason", string(reason), "count", n)
	}
}

// mapResult is the grouped output of the stage-one map phase.
type mapResult struct {
	groups  map[domain.MonthKey][]domain.DailyObservation
	lines   int
	parsed  int
	dropped map[domain.Reason]int
}

// runMapPhase streams lines from the source through a pool of parse workers
// that group valid observations by month key. The WaitGroup wait is the
// barrier between map and reduce: no key is folded before all of its values
// have arrived. Grouping storage is guarded by a single mutex so two workers
// never mutate one key's slice concurrently.
func runMapPhase(
	ctx context.Context,
	source LineSource,
	workers int,
	parse func(string) (domain.DailyObservation, error),
	name string,
	logger *slog.Logger,
	metrics *observability.Metrics,
) (mapResult, error) {
	if workers < 1 {
		workers = 1
	}

	lines := make(chan string, 4*workers)
	srcErr := make(chan error, 1)
	go func() {
		defer close(lines)
		srcErr <- source.Lines(ctx, lines)
	}()

	var (
		mu      sync.Mutex
		groups  = make(map[domain.MonthKey][]domain.DailyObservation)
		dropped = make(map[domain.Reason]int)
	)
	var linesRead, parsed atomic.Int64

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for line := range lines {
				linesRead.Add(1)
				metrics.LinesRead.WithLabelValues(name).Inc()

				if strings.TrimSpace(line) == "" || domain.IsHeaderLine(line) {
					continue
				}

				obs, err := parse(line)
				if err != nil {
					reason := dropReason(err)
					mu.Lock()
					dropped[reason]++
					mu.Unlock()
					metrics.RecordsDropped.WithLabelValues(name, string(reason)).Inc()
					logger.Debug("record dropped", "pipeline", name, "reason", string(reason), "error", err)
					continue
				}

				mu.Lock()
				groups[obs.Key()] = append(groups[obs.Key()], obs)
				mu.Unlock()
				parsed.Add(1)
				metrics.RecordsParsed.WithLabelValues(name).Inc()
			}
		}()
	}
	wg.Wait()

	if err := <-srcErr; err != nil {
		return mapResult{}, fmt.Errorf("read input: %w", err)
	}

	return mapResult{
		groups:  groups,
		lines:   int(linesRead.Load()),
		parsed:  int(parsed.Load()),
		dropped: dropped,
	}, nil
}

// dropReason extracts the taxonomy reason from a parse or regroup error.
func dropReason(err error) domain.Reason {
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		return pe.Reason
	}
	return domain.Reason("unknown")
}
