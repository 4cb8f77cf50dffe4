package domain

import "strconv"

// MonthlyPrecipitationStat is the stage-one reduction of a month's daily
// precipitation readings for one (city, year, month) key.
type MonthlyPrecipitationStat struct {
	Key MonthKey

	MonthlyTotal float64
	DaysWithRain int
	MaxDaily     float64
	AvgDaily     float64
	TotalDays    int
}

// ReducePrecipitationMonth folds a month's observations into its statistic.
// Commutative and associative; the group must be non-empty.
func ReducePrecipitationMonth(key MonthKey, group []DailyObservation) MonthlyPrecipitationStat {
	var total, maxDaily float64
	rainy := 0

	for _, o := range group {
		total += o.Precipitation
		if o.Precipitation > 0 {
			rainy++
		}
		maxDaily = max(maxDaily, o.Precipitation)
	}

	return MonthlyPrecipitationStat{
		Key:          key,
		MonthlyTotal: Round2(total),
		DaysWithRain: rainy,
		MaxDaily:     Round2(maxDaily),
		AvgDaily:     Round2(total / float64(len(group))),
		TotalDays:    len(group),
	}
}

// SeasonKeyOf reclassifies a monthly stat under its rainfall season. The
// stat's fields carry forward unchanged; only the grouping key is derived.
func (s MonthlyPrecipitationStat) SeasonKeyOf() (SeasonKey, error) {
	season, err := SeasonOf(s.Key.Month)
	if err != nil {
		return SeasonKey{}, err
	}
	return SeasonKey{City: s.Key.City, Season: season, Year: s.Key.Year}, nil
}

// SeasonalPrecipitationStat is the terminal precipitation record: all monthly
// stats sharing one (city, season, year) key folded together.
type SeasonalPrecipitationStat struct {
	City           string  `json:"city"`
	Year           int     `json:"year"`
	Season         Season  `json:"season"`
	Total          float64 `json:"total_precipitation"`
	AvgMonthly     float64 `json:"avg_monthly_precipitation"`
	MaxMonthly     float64 `json:"max_monthly_precipitation"`
	TotalRainyDays int     `json:"total_rainy_days"`
	MonthsInSeason int     `json:"months_in_season"`
}

// ReduceSeason folds a season's monthly stats. The average divides by the
// months actually present, so a season with only two of its three calendar
// months still divides by two. MonthsInSeason exposes that divisor.
func ReduceSeason(key SeasonKey, group []MonthlyPrecipitationStat) SeasonalPrecipitationStat {
	var total, maxMonthly float64
	rainy := 0

	for _, m := range group {
		total += m.MonthlyTotal
		rainy += m.DaysWithRain
		maxMonthly = max(maxMonthly, m.MonthlyTotal)
	}

	return SeasonalPrecipitationStat{
		City:           key.City,
		Year:           key.Year,
		Season:         key.Season,
		Total:          Round2(total),
		AvgMonthly:     Round2(total / float64(len(group))),
		MaxMonthly:     Round2(maxMonthly),
		TotalRainyDays: rainy,
		MonthsInSeason: len(group),
	}
}

// PrecipitationColumns is the published header for precipitation results.
var PrecipitationColumns = []string{
	"city", "year", "season",
	"total_precipitation", "avg_monthly_precipitation",
	"max_monthly_precipitation", "total_rainy_days",
	"months_in_season",
}

// Fields renders the stat in output column order.
func (s SeasonalPrecipitationStat) Fields() []string {
	return []string{
		s.City,
		strconv.Itoa(s.Year),
		string(s.Season),
		FormatAmount(s.Total),
		FormatAmount(s.AvgMonthly),
		FormatAmount(s.MaxMonthly),
		strconv.Itoa(s.TotalRainyDays),
		strconv.Itoa(s.MonthsInSeason),
	}
}
