package openmeteo

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// InputColumns is the raw input CSV header written by the fetch command and
// recognized (and skipped) by the pipeline parsers.
var InputColumns = []string{
	"time", "temperature_2m_max", "temperature_2m_min", "temperature_2m_mean",
	"precipitation_sum", "windspeed_10m_max", "sunshine_duration",
	"city", "latitude", "longitude",
}

// WriteCSV flattens per-city daily records into the pipeline's input format:
// one row per city per day, city name and coordinates repeated on every row.
// Null readings become empty columns.
func WriteCSV(w io.Writer, city City, records []DailyRecord, includeHeader bool) error {
	cw := csv.NewWriter(w)

	if includeHeader {
		if err := cw.Write(InputColumns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for _, r := range records {
		row := []string{
			r.Date,
			formatReading(r.TempMax),
			formatReading(r.TempMin),
			formatReading(r.TempMean),
			formatReading(r.Precipitation),
			formatReading(r.WindspeedMax),
			formatReading(r.Sunshine),
			city.Name,
			strconv.FormatFloat(city.Lat, 'f', 4, 64),
			strconv.FormatFloat(city.Lon, 'f', 4, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatReading(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
