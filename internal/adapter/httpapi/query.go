package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jrendon/weather-aggregation/internal/report"
)

// parseQuery validates the supported query parameters. Non-numeric year,
// non-positive limit, and negative offset are client errors.
func parseQuery(r *http.Request) (report.Query, error) {
	values := r.URL.Query()
	q := report.Query{
		City:   values.Get("city"),
		Season: values.Get("season"),
	}

	if raw := values.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return report.Query{}, fmt.Errorf("year must be an integer, got %q", raw)
		}
		q.Year = &year
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return report.Query{}, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		q.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return report.Query{}, fmt.Errorf("offset must be a non-negative integer, got %q", raw)
		}
		q.Offset = offset
	}

	return q, nil
}

// filtersOf echoes the applied filters back in response metadata.
func filtersOf(q report.Query) map[string]string {
	filters := make(map[string]string)
	if q.City != "" {
		filters["city"] = q.City
	}
	if q.Year != nil {
		filters["year"] = strconv.Itoa(*q.Year)
	}
	if q.Season != "" {
		filters["season"] = q.Season
	}
	if q.Limit > 0 {
		filters["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Offset > 0 {
		filters["offset"] = strconv.Itoa(q.Offset)
	}
	return filters
}
