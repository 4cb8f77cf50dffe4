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

// Precipitation is the two-stage precipitation pipeline: daily readings
// reduce to monthly totals, which reclassify under (city, season, year) and
// reduce again to seasonal statistics.
type Precipitation struct {
	workers int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPrecipitation creates the precipitation pipeline with the given
// map-phase worker count.
func NewPrecipitation(workers int, logger *slog.Logger, metrics *observability.Metrics) *Precipitation {
	return &Precipitation{workers: workers, logger: logger, metrics: metrics}
}

// Run executes the full batch. The stage-two regroup only starts after every
// stage-one key has been reduced, because season membership is derived from
// stage-one output. A monthly stat that fails reclassification is dropped
// and counted under the regroup reason; its siblings are unaffected.
func (p *Precipitation) Run(ctx context.Context, source LineSource, sinks ...SeasonalSink) (Summary, error) {
	const name = "precipitation"

	start := clock.Now()
	p.metrics.RunInProgress.Set(1)
	defer p.metrics.RunInProgress.Set(0)

	mapped, err := runMapPhase(ctx, source, p.workers, domain.ParsePrecipitationLine, name, p.logger, p.metrics)
	if err != nil {
		return Summary{Pipeline: name}, err
	}

	// Stage-one reduce, then season reclassification.
	bySeason := make(map[domain.SeasonKey][]domain.MonthlyPrecipitationStat)
	for key, group := range mapped.groups {
		stat := domain.ReducePrecipitationMonth(key, group)
		sk, err := stat.SeasonKeyOf()
		if err != nil {
			reason := dropReason(err)
			mapped.dropped[reason]++
			p.metrics.RecordsDropped.WithLabelValues(name, string(reason)).Inc()
			p.logger.Warn("monthly stat dropped during reclassification",
				"pipeline", name, "city", key.City, "year", key.Year, "month", key.Month, "error", err)
			continue
		}
		bySeason[sk] = append(bySeason[sk], stat)
	}

	keys := make([]domain.SeasonKey, 0, len(bySeason))
	for sk := range bySeason {
		keys = append(keys, sk)
	}
	slices.SortFunc(keys, func(a, b domain.SeasonKey) int {
		return cmp.Or(
			cmp.Compare(a.City, b.City),
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Season.CalendarOrder(), b.Season.CalendarOrder()),
		)
	})

	rows := 0
	for _, sk := range keys {
		stat := domain.ReduceSeason(sk, bySeason[sk])
		for _, sink := range sinks {
			if err := sink.WriteSeasonal(ctx, stat); err != nil {
				return Summary{Pipeline: name}, fmt.Errorf("write seasonal row: %w", err)
			}
		}
		rows++
		p.metrics.RowsWritten.WithLabelValues(name).Inc()
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
