package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testTemperature() []TemperatureRecord {
	return []TemperatureRecord{
		{City: "Bogotá", Year: 2023, Month: 1, MonthName: "January", AvgMax: 20, AvgMin: 9, AvgMean: 14, Max: 22, Min: 7, Days: 31},
		{City: "Bogotá", Year: 2024, Month: 1, MonthName: "January", AvgMax: 21, AvgMin: 10, AvgMean: 15, Max: 23, Min: 8, Days: 31},
		{City: "Medellín", Year: 2023, Month: 6, MonthName: "June", AvgMax: 30, AvgMin: 20, AvgMean: 25, Max: 32, Min: 18, Days: 30},
	}
}

func testPrecipitation() []PrecipitationRecord {
	return []PrecipitationRecord{
		{City: "Bogotá", Year: 2023, Season: "Verano", Total: 50, AvgMonthly: 16.67, MaxMonthly: 30, TotalRainyDays: 10, MonthsInSeason: 3},
		{City: "Bogotá", Year: 2023, Season: "Invierno", Total: 360, AvgMonthly: 120, MaxMonthly: 150, TotalRainyDays: 51, MonthsInSeason: 3},
		{City: "Medellín", Year: 2024, Season: "Invierno", Total: 400, AvgMonthly: 133.33, MaxMonthly: 160, TotalRainyDays: 60, MonthsInSeason: 3},
	}
}

func TestServiceReadiness(t *testing.T) {
	assert.Error(t, NewService(nil, nil, nil).CheckReadiness())
	assert.NoError(t, NewService(testTemperature(), nil, nil).CheckReadiness())
	assert.NoError(t, NewService(nil, testPrecipitation(), nil).CheckReadiness())
}

func TestServiceTemperatureFilters(t *testing.T) {
	svc := NewService(testTemperature(), nil, nil)

	t.Run("no filter returns everything in file order", func(t *testing.T) {
		got := svc.Temperature(Query{})
		require.Len(t, got, 3)
		assert.Equal(t, "Bogotá", got[0].City)
	})

	t.Run("city filter is a case-insensitive substring", func(t *testing.T) {
		got := svc.Temperature(Query{City: "bogo"})
		require.Len(t, got, 2)
		for _, rec := range got {
			assert.Equal(t, "Bogotá", rec.City)
		}
	})

	t.Run("year filter is exact", func(t *testing.T) {
		got := svc.Temperature(Query{Year: intPtr(2024)})
		require.Len(t, got, 1)
		assert.Equal(t, 2024, got[0].Year)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		assert.Empty(t, svc.Temperature(Query{City: "Paris"}))
	})
}

func TestServicePrecipitationFilters(t *testing.T) {
	svc := NewService(nil, testPrecipitation(), nil)

	got := svc.Precipitation(Query{Season: "invierno"})
	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, "Invierno", rec.Season)
	}

	got = svc.Precipitation(Query{City: "Medellín", Season: "Verano"})
	assert.Empty(t, got)
}

func TestServicePagination(t *testing.T) {
	svc := NewService(testTemperature(), nil, nil)

	t.Run("limit", func(t *testing.T) {
		got := svc.Temperature(Query{Limit: 2})
		require.Len(t, got, 2)
		assert.Equal(t, 2023, got[0].Year)
	})

	t.Run("offset", func(t *testing.T) {
		got := svc.Temperature(Query{Offset: 2})
		require.Len(t, got, 1)
		assert.Equal(t, "Medellín", got[0].City)
	})

	t.Run("offset past the end", func(t *testing.T) {
		assert.Empty(t, svc.Temperature(Query{Offset: 99}))
	})

	t.Run("offset then limit", func(t *testing.T) {
		got := svc.Temperature(Query{Offset: 1, Limit: 1})
		require.Len(t, got, 1)
		assert.Equal(t, 2024, got[0].Year)
	})
}

func TestServiceSummarize(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	svc := NewService(testTemperature(), testPrecipitation(), clockwork.NewFakeClockAt(now))

	summary := svc.Summarize()

	assert.Equal(t, now, summary.GeneratedAt)

	assert.Equal(t, 3, summary.Temperature.TotalRecords)
	assert.Equal(t, []string{"Bogotá", "Medellín"}, summary.Temperature.Cities)
	assert.Equal(t, []int{2023, 2024}, summary.Temperature.Years)
	assert.InDelta(t, 23.67, summary.Temperature.AvgMaxTemp, 0.01)
	assert.Equal(t, 32.0, summary.Temperature.HighestRecorded)
	assert.Equal(t, 7.0, summary.Temperature.LowestRecorded)

	assert.Equal(t, 3, summary.Precipitation.TotalRecords)
	assert.Equal(t, []string{"Invierno", "Verano"}, summary.Precipitation.Seasons)
	assert.Equal(t, 270.0, summary.Precipitation.AvgSeasonalTotal)
	assert.Equal(t, 400.0, summary.Precipitation.MaxSeasonalTotal)
	assert.InDelta(t, 40.33, summary.Precipitation.AvgRainyDays, 0.01)
}

func TestServiceSummarizeEmpty(t *testing.T) {
	summary := NewService(nil, nil, nil).Summarize()
	assert.Zero(t, summary.Temperature.TotalRecords)
	assert.Zero(t, summary.Precipitation.TotalRecords)
}

func TestServiceCities(t *testing.T) {
	svc := NewService(testTemperature(), testPrecipitation(), nil)

	cities := svc.Cities()
	require.Contains(t, cities, "Bogotá")
	require.Contains(t, cities, "Medellín")

	bogota := cities["Bogotá"]
	assert.Equal(t, 2, bogota.TemperatureRecords)
	assert.Equal(t, []int{2023, 2024}, bogota.YearsAnalyzed)
	assert.Equal(t, 14.5, bogota.AvgTemperature)
	assert.Equal(t, 23.0, bogota.MaxTempRecorded)
	assert.Equal(t, 7.0, bogota.MinTempRecorded)
	assert.Equal(t, 2, bogota.PrecipitationRecords)
	assert.Equal(t, []string{"Invierno", "Verano"}, bogota.SeasonsAnalyzed)
	assert.Equal(t, 205.0, bogota.AvgSeasonalTotal)
	assert.Equal(t, 30.5, bogota.AvgRainyDays)
}

func TestLoadTemperature(t *testing.T) {
	const body = "city,year,number_month,month,avg_max_temp,avg_min_temp,avg_mean_temp,max_temp,min_temp,days_recorded\n" +
		"Medellín,2023,06,June,30.0,20.0,25.0,31.5,18.2,30\n"

	t.Run("with header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "temperature_results.csv")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		records, err := LoadTemperature(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, TemperatureRecord{
			City: "Medellín", Year: 2023, Month: 6, MonthName: "June",
			AvgMax: 30, AvgMin: 20, AvgMean: 25, Max: 31.5, Min: 18.2, Days: 30,
		}, records[0])
	})

	t.Run("without header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "temperature_results.csv")
		require.NoError(t, os.WriteFile(path, []byte("Medellín,2023,06,June,30.0,20.0,25.0,31.5,18.2,30\n"), 0o644))

		records, err := LoadTemperature(path)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("wrong column count", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "temperature_results.csv")
		require.NoError(t, os.WriteFile(path, []byte("Medellín,2023,06\n"), 0o644))

		_, err := LoadTemperature(path)
		require.Error(t, err)
	})

	t.Run("non-numeric year", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "temperature_results.csv")
		require.NoError(t, os.WriteFile(path, []byte("Medellín,MMXXIII,06,June,30.0,20.0,25.0,31.5,18.2,30\n"), 0o644))

		_, err := LoadTemperature(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "year")
	})
}

func TestLoadPrecipitation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "precipitation_results.csv")
	const body = "city,year,season,total_precipitation,avg_monthly_precipitation,max_monthly_precipitation,total_rainy_days,months_in_season\n" +
		"Bogotá,2023,Invierno,360.75,120.25,150.25,51,3\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	records, err := LoadPrecipitation(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, PrecipitationRecord{
		City: "Bogotá", Year: 2023, Season: "Invierno",
		Total: 360.75, AvgMonthly: 120.25, MaxMonthly: 150.25,
		TotalRainyDays: 51, MonthsInSeason: 3,
	}, records[0])
}
