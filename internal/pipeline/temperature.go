package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jrendon/weather-aggregation/internal/domain"
	"github.com/jrendon/weather-aggregation/internal/observability"
)

// Temperature is the two-stage temperature pipeline: daily readings reduce to
// monthly statistics, which regroup by (city, year) and emit month-sorted
// final rows.
type Temperature struct {
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTemperature creates the temperature pipeline with the given map-phase
// worker count.
func NewTemperature(workers int, logger *slog.Logger, metrics *observability.Metrics) *Temperature {
	return &Temperature{workers: workers, logger: logger, metrics: metrics}
}

// Run executes the full batch: parse and group, monthly reduce, regroup by
// year, sort, and emit to every sink. Rows for one (city, year) are written
// strictly increasing by month; groups of cities are ordered by city then
// year so output files are deterministic.
func (p *Temperature) Run(ctx context.Context, source LineSource, sinks ...TemperatureSink) (Summary, error) {
	const name = "temperature"

	start := clock.Now()
	p.metrics.RunInProgress.Set(1)
	defer p.metrics.RunInProgress.Set(0)

	mapped, err := runMapPhase(ctx, source, p.workers, domain.ParseTemperatureLine, name, p.logger, p.metrics)
	if err != nil {
		return Summary{Pipeline: name}, err
	}

	// Stage-one reduce, regrouped directly under the stage-two key.
	byYear := make(map[domain.YearKey][]domain.MonthlyTemperatureStat)
	for key, group := range mapped.groups {
		stat := domain.ReduceTemperatureMonth(key, group)
		yk := domain.YearKey{City: key.City, Year: key.Year}
		byYear[yk] = append(byYear[yk], stat)
	}

	years := make([]domain.YearKey, 0, len(byYear))
	for yk := range byYear {
		years = append(years, yk)
	}
	slices.SortFunc(years, func(a, b domain.YearKey) int {
		return cmp.Or(cmp.Compare(a.City, b.City), cmp.Compare(a.Year, b.Year))
	})

	rows := 0
	for _, yk := range years {
		stats := byYear[yk]
		slices.SortFunc(stats, func(a, b domain.MonthlyTemperatureStat) int {
			return cmp.Compare(a.Key.Month, b.Key.Month)
		})
		for _, stat := range stats {
			row := domain.FinalizeTemperatureRow(stat)
			for _, sink := range sinks {
				if err := sink.WriteTemperature(ctx, row); err != nil {
					return Summary{Pipeline: name}, fmt.Errorf("write temperature row: %w", err)
				}
			}
			rows++
			p.metrics.RowsWritten.WithLabelValues(name).Inc()
		}
	}

	duration := clock.Since(start)
	p.metrics.RunDuration.WithLabelValues(name).Observe(duration.Seconds())

	summary := Summary{
		Pipeline:    name,
		LinesRead:   mapped.lines,
		Parsed:      mapped.parsed,
		Dropped:     mapped.dropped,
		MonthKeys:   len(mapped.groups),
		RowsWritten: rows,
		Duration:    duration,
	}
	summary.LogTo(p.logger)
	return summary, nil
}
