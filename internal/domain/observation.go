package domain

// DailyObservation is one day of weather readings for a single city. It is
// transient: produced per input line during the map phase and consumed by the
// monthly reduce, never persisted.
type DailyObservation struct {
	City  string
	Year  int
	Month int // 1..12
	Day   int

	TempMax       float64
	TempMin       float64
	TempMean      float64
	Precipitation float64
}

// MonthKey groups daily observations into calendar months per city.
type MonthKey struct {
	City  string
	Year  int
	Month int // 1..12
}

// YearKey groups monthly temperature statistics for final per-year emission.
type YearKey struct {
	City string
	Year int
}

// SeasonKey groups monthly precipitation statistics by rainfall season.
// Year is the calendar year of the contributing months.
type SeasonKey struct {
	City   string
	Season Season
	Year   int
}
