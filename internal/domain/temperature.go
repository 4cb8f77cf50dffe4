package domain

import (
	"fmt"
	"strconv"
	"time"
)

// MonthlyTemperatureStat is the stage-one reduction of all valid daily
// temperature readings sharing one (city, year, month) key.
type MonthlyTemperatureStat struct {
	Key MonthKey

	AvgMax      float64
	AvgMin      float64
	AvgMean     float64
	MaxRecorded float64
	MinRecorded float64
	DayCount    int
}

// ReduceTemperatureMonth folds a month's observations into its statistic.
// The fold is commutative and associative, so arrival order never matters.
// The group must be non-empty; keys exist only because at least one
// observation was seen.
func ReduceTemperatureMonth(key MonthKey, group []DailyObservation) MonthlyTemperatureStat {
	var sumMax, sumMin, sumMean float64
	maxRec := group[0].TempMax
	minRec := group[0].TempMin

	for _, o := range group {
		sumMax += o.TempMax
		sumMin += o.TempMin
		sumMean += o.TempMean
		maxRec = max(maxRec, o.TempMax)
		minRec = min(minRec, o.TempMin)
	}

	n := float64(len(group))
	return MonthlyTemperatureStat{
		Key:         key,
		AvgMax:      Round2(sumMax / n),
		AvgMin:      Round2(sumMin / n),
		AvgMean:     Round2(sumMean / n),
		MaxRecorded: Round2(maxRec),
		MinRecorded: Round2(minRec),
		DayCount:    len(group),
	}
}

// FinalTemperatureRow is the terminal temperature record: one monthly
// statistic enriched with its English calendar month name. Rows for one
// (city, year) are emitted strictly increasing by month.
type FinalTemperatureRow struct {
	City      string  `json:"city"`
	Year      int     `json:"year"`
	Month     int     `json:"number_month"`
	MonthName string  `json:"month"`
	AvgMax    float64 `json:"avg_max_temp"`
	AvgMin    float64 `json:"avg_min_temp"`
	AvgMean   float64 `json:"avg_mean_temp"`
	Max       float64 `json:"max_temp"`
	Min       float64 `json:"min_temp"`
	Days      int     `json:"days_recorded"`
}

// FinalizeTemperatureRow attaches the calendar month name to a monthly stat.
func FinalizeTemperatureRow(stat MonthlyTemperatureStat) FinalTemperatureRow {
	return FinalTemperatureRow{
		City:      stat.Key.City,
		Year:      stat.Key.Year,
		Month:     stat.Key.Month,
		MonthName: time.Month(stat.Key.Month).String(),
		AvgMax:    stat.AvgMax,
		AvgMin:    stat.AvgMin,
		AvgMean:   stat.AvgMean,
		Max:       stat.MaxRecorded,
		Min:       stat.MinRecorded,
		Days:      stat.DayCount,
	}
}

// TemperatureColumns is the published header for temperature results,
// injected by the addheaders pass after a run completes.
var TemperatureColumns = []string{
	"city", "year", "number_month", "month",
	"avg_max_temp", "avg_min_temp", "avg_mean_temp",
	"max_temp", "min_temp", "days_recorded",
}

// Fields renders the row in output column order, month as two digits.
func (r FinalTemperatureRow) Fields() []string {
	return []string{
		r.City,
		strconv.Itoa(r.Year),
		fmt.Sprintf("%02d", r.Month),
		r.MonthName,
		FormatAmount(r.AvgMax),
		FormatAmount(r.AvgMin),
		FormatAmount(r.AvgMean),
		FormatAmount(r.Max),
		FormatAmount(r.Min),
		strconv.Itoa(r.Days),
	}
}
