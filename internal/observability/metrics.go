package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// aggregation pipelines. Dropped records are counted per taxonomy reason so
// operators can see drop rates without the run ever aborting.
type Metrics struct {
	LinesRead      *prometheus.CounterVec // labels: pipeline={temperature,precipitation}
	RecordsParsed  *prometheus.CounterVec // labels: pipeline
	RecordsDropped *prometheus.CounterVec // labels: pipeline, reason
	RowsWritten    *prometheus.CounterVec // labels: pipeline

	RunDuration   *prometheus.HistogramVec // labels: pipeline
	RunInProgress prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LinesRead,
		m.RecordsParsed,
		m.RecordsDropped,
		m.RowsWritten,
		m.RunDuration,
		m.RunInProgress,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LinesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_agg",
			Name:      "lines_read_total",
			Help:      "Raw input lines read, including skipped headers.",
		}, []string{"pipeline"}),
		RecordsParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_agg",
			Name:      "records_parsed_total",
			Help:      "Daily observations accepted into stage-one grouping.",
		}, []string{"pipeline"}),
		RecordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_agg",
			Name:      "records_dropped_total",
			Help:      "Records dropped during parsing or regrouping, by reason.",
		}, []string{"pipeline", "reason"}),
		RowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_agg",
			Name:      "rows_written_total",
			Help:      "Terminal rows written to the output sink.",
		}, []string{"pipeline"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_agg",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete two-stage pipeline run.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"pipeline"}),
		RunInProgress: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_agg",
			Name:      "run_in_progress",
			Help:      "1 while a pipeline run is active, 0 otherwise.",
		}),
	}
}
