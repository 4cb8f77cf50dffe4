// Package report serves the finished aggregation results read-only: it loads
// the result CSVs into memory and answers filtered queries, summaries, and
// per-city rollups for the HTTP API. It never recomputes statistics; the
// pipeline output is the source of truth.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// TemperatureRecord is one row of the temperature results file.
type TemperatureRecord struct {
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

// PrecipitationRecord is one row of the precipitation results file.
type PrecipitationRecord struct {
	City           string  `json:"city"`
	Year           int     `json:"year"`
	Season         string  `json:"season"`
	Total          float64 `json:"total_precipitation"`
	AvgMonthly     float64 `json:"avg_monthly_precipitation"`
	MaxMonthly     float64 `json:"max_monthly_precipitation"`
	TotalRainyDays int     `json:"total_rainy_days"`
	MonthsInSeason int     `json:"months_in_season"`
}

// LoadTemperature reads a temperature results file, with or without the
// injected header row.
func LoadTemperature(path string) ([]TemperatureRecord, error) {
	rows, err := loadRows(path, 10)
	if err != nil {
		return nil, err
	}

	records := make([]TemperatureRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := parseTemperatureRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadPrecipitation reads a precipitation results file, with or without the
// injected header row.
func LoadPrecipitation(path string) ([]PrecipitationRecord, error) {
	rows, err := loadRows(path, 8)
	if err != nil {
		return nil, err
	}

	records := make([]PrecipitationRecord, 0, len(rows))
	for i, row := range rows {
		rec, err := parsePrecipitationRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func loadRows(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = fields
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", path, err)
	}
	if len(rows) > 0 && rows[0][0] == "city" {
		rows = rows[1:]
	}
	return rows, nil
}

func parseTemperatureRow(row []string) (TemperatureRecord, error) {
	year, err := strconv.Atoi(row[1])
	if err != nil {
		return TemperatureRecord{}, fmt.Errorf("year: %w", err)
	}
	month, err := strconv.Atoi(row[2])
	if err != nil {
		return TemperatureRecord{}, fmt.Errorf("month: %w", err)
	}
	days, err := strconv.Atoi(row[9])
	if err != nil {
		return TemperatureRecord{}, fmt.Errorf("days_recorded: %w", err)
	}

	amounts := make([]float64, 5)
	for i, col := range []int{4, 5, 6, 7, 8} {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return TemperatureRecord{}, fmt.Errorf("column %d: %w", col, err)
		}
		amounts[i] = v
	}

	return TemperatureRecord{
		City:      row[0],
		Year:      year,
		Month:     month,
		MonthName: row[3],
		AvgMax:    amounts[0],
		AvgMin:    amounts[1],
		AvgMean:   amounts[2],
		Max:       amounts[3],
		Min:       amounts[4],
		Days:      days,
	}, nil
}

func parsePrecipitationRow(row []string) (PrecipitationRecord, error) {
	year, err := strconv.Atoi(row[1])
	if err != nil {
		return PrecipitationRecord{}, fmt.Errorf("year: %w", err)
	}
	rainy, err := strconv.Atoi(row[6])
	if err != nil {
		return PrecipitationRecord{}, fmt.Errorf("total_rainy_days: %w", err)
	}
	months, err := strconv.Atoi(row[7])
	if err != nil {
		return PrecipitationRecord{}, fmt.Errorf("months_in_season: %w", err)
	}

	amounts := make([]float64, 3)
	for i, col := range []int{3, 4, 5} {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			return PrecipitationRecord{}, fmt.Errorf("column %d: %w", col, err)
		}
		amounts[i] = v
	}

	return PrecipitationRecord{
		City:           row[0],
		Year:           year,
		Season:         row[2],
		Total:          amounts[0],
		AvgMonthly:     amounts[1],
		MaxMonthly:     amounts[2],
		TotalRainyDays: rainy,
		MonthsInSeason: months,
	}, nil
}
