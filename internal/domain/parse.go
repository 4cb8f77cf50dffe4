package domain

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// headerPrefix identifies a CSV header row inside the input. Concatenated
// per-city files repeat the header, so it is skipped rather than rejected.
const headerPrefix = "time,temperature"

// minFields is the number of positional columns a data row must carry:
// time, temp max, temp min, temp mean, precipitation, windspeed, sunshine, city.
// Latitude and longitude may follow and are ignored.
const minFields = 8

// Input column positions.
const (
	colDate          = 0
	colTempMax       = 1
	colTempMin       = 2
	colTempMean      = 3
	colPrecipitation = 4
	colCity          = 7
)

// Reason classifies why a record was dropped during parsing or regrouping.
type Reason string

const (
	// ReasonShapeMismatch marks rows with fewer than eight fields or broken
	// CSV quoting.
	ReasonShapeMismatch Reason = "shape_mismatch"
	// ReasonNumericParse marks rows whose required numeric field does not
	// parse as a float.
	ReasonNumericParse Reason = "numeric_parse"
	// ReasonDateFormat marks rows whose date is not strict YYYY-MM-DD.
	ReasonDateFormat Reason = "date_format"
	// ReasonMissingValue marks rows missing a value the pipeline requires.
	// This is an exclusion rather than a malformation: the row is well formed
	// but carries no usable reading.
	ReasonMissingValue Reason = "missing_value"
	// ReasonRegroup marks malformed intermediate values during stage-two
	// reclassification, such as a month outside 1..12.
	ReasonRegroup Reason = "regroup"
)

// ParseError reports a dropped record together with its taxonomy reason.
// Parse errors are never fatal to a run: the pipeline counts them and moves on.
type ParseError struct {
	Reason Reason
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(reason Reason, format string, args ...any) *ParseError {
	return &ParseError{Reason: reason, Err: fmt.Errorf(format, args...)}
}

// IsHeaderLine reports whether the line is the input CSV header.
func IsHeaderLine(line string) bool {
	return strings.HasPrefix(line, headerPrefix)
}

// ParseTemperatureLine parses one raw input line for the temperature
// pipeline. It requires max, min, and mean temperature readings; a row with
// any of the three empty is excluded. Pure function, no side effects.
func ParseTemperatureLine(line string) (DailyObservation, error) {
	fields, err := splitFields(line)
	if err != nil {
		return DailyObservation{}, err
	}

	obs, err := parseDateAndCity(fields)
	if err != nil {
		return DailyObservation{}, err
	}

	readings := [...]struct {
		col  int
		name string
		dst  *float64
	}{
		{colTempMax, "temperature_2m_max", &obs.TempMax},
		{colTempMin, "temperature_2m_min", &obs.TempMin},
		{colTempMean, "temperature_2m_mean", &obs.TempMean},
	}
	for _, r := range readings {
		raw := strings.TrimSpace(fields[r.col])
		if raw == "" {
			return DailyObservation{}, parseErrorf(ReasonMissingValue, "empty %s", r.name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return DailyObservation{}, parseErrorf(ReasonNumericParse, "%s %q: %v", r.name, raw, err)
		}
		*r.dst = v
	}

	return obs, nil
}

// ParsePrecipitationLine parses one raw input line for the precipitation
// pipeline. An empty precipitation field counts as 0.0 (a dry day), matching
// the source data convention. Pure function, no side effects.
func ParsePrecipitationLine(line string) (DailyObservation, error) {
	fields, err := splitFields(line)
	if err != nil {
		return DailyObservation{}, err
	}

	obs, err := parseDateAndCity(fields)
	if err != nil {
		return DailyObservation{}, err
	}

	raw := strings.TrimSpace(fields[colPrecipitation])
	if raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return DailyObservation{}, parseErrorf(ReasonNumericParse, "precipitation_sum %q: %v", raw, err)
		}
		obs.Precipitation = v
	}

	return obs, nil
}

// splitFields splits one CSV line, honoring quoted fields so a city like
// "Bogotá, D.C." stays a single column.
func splitFields(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, parseErrorf(ReasonShapeMismatch, "malformed csv: %v", err)
	}
	if len(fields) < minFields {
		return nil, parseErrorf(ReasonShapeMismatch, "%d fields, need at least %d", len(fields), minFields)
	}
	return fields, nil
}

func parseDateAndCity(fields []string) (DailyObservation, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(fields[colDate]))
	if err != nil {
		return DailyObservation{}, parseErrorf(ReasonDateFormat, "date %q: %v", fields[colDate], err)
	}
	return DailyObservation{
		City:  fields[colCity],
		Year:  date.Year(),
		Month: int(date.Month()),
		Day:   date.Day(),
	}, nil
}

// Key returns the stage-one grouping key for the observation.
func (o DailyObservation) Key() MonthKey {
	return MonthKey{City: o.City, Year: o.Year, Month: o.Month}
}
