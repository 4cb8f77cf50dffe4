package report

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jrendon/weather-aggregation/internal/domain"
)

// Query holds the supported filters. Zero values mean "no filter"; a nil
// Year means no year filter. Validation of raw query-string input happens in
// the HTTP layer.
type Query struct {
	City   string // case-insensitive substring
	Year   *int   // exact match
	Season string // case-insensitive substring, precipitation only
	Limit  int    // 0 = unlimited
	Offset int
}

// Service answers read-only queries over loaded result sets.
type Service struct {
	temperature   []TemperatureRecord
	precipitation []PrecipitationRecord
	clock         clockwork.Clock
}

// NewService wraps loaded result sets. Pass a nil clock for real time.
func NewService(temperature []TemperatureRecord, precipitation []PrecipitationRecord, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{temperature: temperature, precipitation: precipitation, clock: clock}
}

// CheckReadiness reports whether any results are loaded.
func (s *Service) CheckReadiness() error {
	if len(s.temperature) == 0 && len(s.precipitation) == 0 {
		return errors.New("no result data loaded")
	}
	return nil
}

// Temperature returns temperature records matching the query, in file order.
func (s *Service) Temperature(q Query) []TemperatureRecord {
	matched := make([]TemperatureRecord, 0)
	for _, rec := range s.temperature {
		if !matchCity(rec.City, q.City) || !matchYear(rec.Year, q.Year) {
			continue
		}
		matched = append(matched, rec)
	}
	return paginate(matched, q.Offset, q.Limit)
}

// Precipitation returns precipitation records matching the query, in file order.
func (s *Service) Precipitation(q Query) []PrecipitationRecord {
	matched := make([]PrecipitationRecord, 0)
	for _, rec := range s.precipitation {
		if !matchCity(rec.City, q.City) || !matchYear(rec.Year, q.Year) {
			continue
		}
		if q.Season != "" && !containsFold(rec.Season, q.Season) {
			continue
		}
		matched = append(matched, rec)
	}
	return paginate(matched, q.Offset, q.Limit)
}

func matchCity(city, filter string) bool {
	return filter == "" || containsFold(city, filter)
}

func matchYear(year int, filter *int) bool {
	return filter == nil || year == *filter
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func paginate[T any](records []T, offset, limit int) []T {
	if offset >= len(records) {
		return []T{}
	}
	records = records[offset:]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}

// Summary is the cross-dataset rollup served by /data/summary.
type Summary struct {
	GeneratedAt   time.Time            `json:"generated_at"`
	Temperature   TemperatureSummary   `json:"temperature_analysis"`
	Precipitation PrecipitationSummary `json:"precipitation_analysis"`
}

// TemperatureSummary aggregates the whole temperature result set.
type TemperatureSummary struct {
	TotalRecords    int      `json:"total_records"`
	Cities          []string `json:"cities"`
	Years           []int    `json:"years"`
	AvgMaxTemp      float64  `json:"avg_max_temp"`
	AvgMinTemp      float64  `json:"avg_min_temp"`
	HighestRecorded float64  `json:"highest_temp_recorded"`
	LowestRecorded  float64  `json:"lowest_temp_recorded"`
}

// PrecipitationSummary aggregates the whole precipitation result set.
type PrecipitationSummary struct {
	TotalRecords     int      `json:"total_records"`
	Cities           []string `json:"cities"`
	Years            []int    `json:"years"`
	Seasons          []string `json:"seasons"`
	AvgSeasonalTotal float64  `json:"avg_seasonal_precipitation"`
	MaxSeasonalTotal float64  `json:"max_seasonal_precipitation"`
	AvgRainyDays     float64  `json:"avg_rainy_days"`
}

// Summarize computes the rollup over everything loaded.
func (s *Service) Summarize() Summary {
	out := Summary{GeneratedAt: s.clock.Now().UTC()}

	if len(s.temperature) > 0 {
		var sumMax, sumMin float64
		highest := s.temperature[0].Max
		lowest := s.temperature[0].Min
		cities := make(map[string]bool)
		years := make(map[int]bool)

		for _, rec := range s.temperature {
			sumMax += rec.AvgMax
			sumMin += rec.AvgMin
			highest = max(highest, rec.Max)
			lowest = min(lowest, rec.Min)
			cities[rec.City] = true
			years[rec.Year] = true
		}

		n := float64(len(s.temperature))
		out.Temperature = TemperatureSummary{
			TotalRecords:    len(s.temperature),
			Cities:          sortedKeys(cities),
			Years:           sortedKeys(years),
			AvgMaxTemp:      domain.Round2(sumMax / n),
			AvgMinTemp:      domain.Round2(sumMin / n),
			HighestRecorded: highest,
			LowestRecorded:  lowest,
		}
	}

	if len(s.precipitation) > 0 {
		var sumTotal, sumRainy float64
		maxTotal := s.precipitation[0].Total
		cities := make(map[string]bool)
		years := make(map[int]bool)
		seasons := make(map[string]bool)

		for _, rec := range s.precipitation {
			sumTotal += rec.Total
			sumRainy += float64(rec.TotalRainyDays)
			maxTotal = max(maxTotal, rec.Total)
			cities[rec.City] = true
			years[rec.Year] = true
			seasons[rec.Season] = true
		}

		n := float64(len(s.precipitation))
		out.Precipitation = PrecipitationSummary{
			TotalRecords:     len(s.precipitation),
			Cities:           sortedKeys(cities),
			Years:            sortedKeys(years),
			Seasons:          sortedKeys(seasons),
			AvgSeasonalTotal: domain.Round2(sumTotal / n),
			MaxSeasonalTotal: maxTotal,
			AvgRainyDays:     domain.Round2(sumRainy / n),
		}
	}

	return out
}

// CityInfo is the per-city rollup served by /data/cities.
type CityInfo struct {
	TemperatureRecords   int      `json:"temperature_records,omitempty"`
	YearsAnalyzed        []int    `json:"years_analyzed,omitempty"`
	AvgTemperature       float64  `json:"avg_temperature,omitempty"`
	MaxTempRecorded      float64  `json:"max_temp_recorded,omitempty"`
	MinTempRecorded      float64  `json:"min_temp_recorded,omitempty"`
	PrecipitationRecords int      `json:"precipitation_records,omitempty"`
	SeasonsAnalyzed      []string `json:"seasons_analyzed,omitempty"`
	AvgSeasonalTotal     float64  `json:"avg_seasonal_precipitation,omitempty"`
	AvgRainyDays         float64  `json:"avg_rainy_days_per_season,omitempty"`
}

// Cities rolls both result sets up per city.
func (s *Service) Cities() map[string]CityInfo {
	out := make(map[string]CityInfo)

	byCityTemp := make(map[string][]TemperatureRecord)
	for _, rec := range s.temperature {
		byCityTemp[rec.City] = append(byCityTemp[rec.City], rec)
	}
	for city, recs := range byCityTemp {
		var sumMean float64
		maxRec := recs[0].Max
		minRec := recs[0].Min
		years := make(map[int]bool)
		for _, r := range recs {
			sumMean += r.AvgMean
			maxRec = max(maxRec, r.Max)
			minRec = min(minRec, r.Min)
			years[r.Year] = true
		}
		info := out[city]
		info.TemperatureRecords = len(recs)
		info.YearsAnalyzed = sortedKeys(years)
		info.AvgTemperature = domain.Round2(sumMean / float64(len(recs)))
		info.MaxTempRecorded = maxRec
		info.MinTempRecorded = minRec
		out[city] = info
	}

	byCityPrecip := make(map[string][]PrecipitationRecord)
	for _, rec := range s.precipitation {
		byCityPrecip[rec.City] = append(byCityPrecip[rec.City], rec)
	}
	for city, recs := range byCityPrecip {
		var sumTotal, sumRainy float64
		seasons := make(map[string]bool)
		for _, r := range recs {
			sumTotal += r.Total
			sumRainy += float64(r.TotalRainyDays)
			seasons[r.Season] = true
		}
		info := out[city]
		info.PrecipitationRecords = len(recs)
		info.SeasonsAnalyzed = sortedKeys(seasons)
		info.AvgSeasonalTotal = domain.Round2(sumTotal / float64(len(recs)))
		info.AvgRainyDays = domain.Round2(sumRainy / float64(len(recs)))
		out[city] = info
	}

	return out
}

func sortedKeys[K string | int](set map[K]bool) []K {
	keys := make([]K, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
