// Package openmeteo acquires raw daily observations from the Open-Meteo
// historical archive API and flattens them into the pipeline's input CSV
// format.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client fetches daily weather history for one city at a time.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an archive API client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

// DailyRecord is one day of readings as returned by the archive API.
// Pointer fields are nil where the API reported null; they render as empty
// CSV columns, which the parser later treats as absent.
type DailyRecord struct {
	Date          string
	TempMax       *float64
	TempMin       *float64
	TempMean      *float64
	Precipitation *float64
	WindspeedMax  *float64
	Sunshine      *float64
}

// FetchDaily retrieves the daily series for the coordinates over the
// inclusive date range (strict YYYY-MM-DD).
func (c *Client) FetchDaily(ctx context.Context, lat, lon float64, startDate, endDate string) ([]DailyRecord, error) {
	params := url.Values{
		"latitude":   {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":  {strconv.FormatFloat(lon, 'f', 4, 64)},
		"start_date": {startDate},
		"end_date":   {endDate},
		"daily": {"temperature_2m_max,temperature_2m_min,temperature_2m_mean," +
			"precipitation_sum,windspeed_10m_max,sunshine_duration"},
		"timezone": {"America/Bogota"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("archive API error: status %d: %s", resp.StatusCode, body)
	}

	var ar archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := make([]DailyRecord, 0, len(ar.Daily.Time))
	for i, date := range ar.Daily.Time {
		records = append(records, DailyRecord{
			Date:          date,
			TempMax:       at(ar.Daily.TempMax, i),
			TempMin:       at(ar.Daily.TempMin, i),
			TempMean:      at(ar.Daily.TempMean, i),
			Precipitation: at(ar.Daily.Precipitation, i),
			WindspeedMax:  at(ar.Daily.WindspeedMax, i),
			Sunshine:      at(ar.Daily.Sunshine, i),
		})
	}
	return records, nil
}

// at guards against the API returning series of unequal length.
func at(series []*float64, i int) *float64 {
	if i >= len(series) {
		return nil
	}
	return series[i]
}

// Archive API response types.

type archiveResponse struct {
	Daily struct {
		Time          []string   `json:"time"`
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		TempMean      []*float64 `json:"temperature_2m_mean"`
		Precipitation []*float64 `json:"precipitation_sum"`
		WindspeedMax  []*float64 `json:"windspeed_10m_max"`
		Sunshine      []*float64 `json:"sunshine_duration"`
	} `json:"daily"`
}
