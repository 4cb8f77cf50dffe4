package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReducePrecipitationMonth(t *testing.T) {
	key := MonthKey{City: "Bogotá", Year: 2023, Month: 6}

	t.Run("mixed wet and dry days", func(t *testing.T) {
		group := []DailyObservation{
			{Precipitation: 0},
			{Precipitation: 5},
			{Precipitation: 0},
			{Precipitation: 10},
		}

		stat := ReducePrecipitationMonth(key, group)

		assert.Equal(t, 15.0, stat.MonthlyTotal)
		assert.Equal(t, 2, stat.DaysWithRain)
		assert.Equal(t, 10.0, stat.MaxDaily)
		assert.Equal(t, 3.75, stat.AvgDaily)
		assert.Equal(t, 4, stat.TotalDays)
	})

	t.Run("fully dry month keeps its key", func(t *testing.T) {
		group := []DailyObservation{{Precipitation: 0}, {Precipitation: 0}}

		stat := ReducePrecipitationMonth(key, group)

		assert.Equal(t, 0.0, stat.MonthlyTotal)
		assert.Equal(t, 0, stat.DaysWithRain)
		assert.Equal(t, 0.0, stat.MaxDaily)
		assert.Equal(t, 2, stat.TotalDays)
	})

	t.Run("order independent", func(t *testing.T) {
		forward := []DailyObservation{
			{Precipitation: 1.2}, {Precipitation: 0}, {Precipitation: 7.7},
		}
		reversed := []DailyObservation{forward[2], forward[1], forward[0]}

		assert.Equal(t, ReducePrecipitationMonth(key, forward), ReducePrecipitationMonth(key, reversed))
	})
}

func TestSeasonKeyOf(t *testing.T) {
	t.Run("december stays in its calendar year", func(t *testing.T) {
		stat := MonthlyPrecipitationStat{Key: MonthKey{City: "Cali", Year: 2023, Month: 12}}
		sk, err := stat.SeasonKeyOf()
		require.NoError(t, err)
		assert.Equal(t, SeasonKey{City: "Cali", Season: SeasonDry, Year: 2023}, sk)
	})

	t.Run("invalid month is a regroup error", func(t *testing.T) {
		stat := MonthlyPrecipitationStat{Key: MonthKey{City: "Cali", Year: 2023, Month: 0}}
		_, err := stat.SeasonKeyOf()

		var pe *ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, ReasonRegroup, pe.Reason)
	})
}

func TestReduceSeason(t *testing.T) {
	key := SeasonKey{City: "Bogotá", Season: SeasonWet, Year: 2023}

	t.Run("full season", func(t *testing.T) {
		group := []MonthlyPrecipitationStat{
			{MonthlyTotal: 120.5, DaysWithRain: 18},
			{MonthlyTotal: 90.0, DaysWithRain: 12},
			{MonthlyTotal: 150.25, DaysWithRain: 21},
		}

		stat := ReduceSeason(key, group)

		assert.Equal(t, 360.75, stat.Total)
		assert.Equal(t, 120.25, stat.AvgMonthly)
		assert.Equal(t, 150.25, stat.MaxMonthly)
		assert.Equal(t, 51, stat.TotalRainyDays)
		assert.Equal(t, 3, stat.MonthsInSeason)
	})

	t.Run("partial season divides by months present", func(t *testing.T) {
		// Only two of Invierno's three months observed: the average divides
		// by 2, never by the nominal season length.
		group := []MonthlyPrecipitationStat{
			{MonthlyTotal: 100, DaysWithRain: 10},
			{MonthlyTotal: 50, DaysWithRain: 5},
		}

		stat := ReduceSeason(key, group)

		assert.Equal(t, 150.0, stat.Total)
		assert.Equal(t, 75.0, stat.AvgMonthly)
		assert.Equal(t, 100.0, stat.MaxMonthly)
		assert.Equal(t, 15, stat.TotalRainyDays)
		assert.Equal(t, 2, stat.MonthsInSeason)
	})
}

func TestSeasonalPrecipitationStatFields(t *testing.T) {
	stat := SeasonalPrecipitationStat{
		City:           "Bogotá",
		Year:           2023,
		Season:         SeasonWet,
		Total:          360.75,
		AvgMonthly:     120.25,
		MaxMonthly:     150.25,
		TotalRainyDays: 51,
		MonthsInSeason: 3,
	}

	assert.Equal(t, []string{
		"Bogotá", "2023", "Invierno",
		"360.75", "120.25", "150.25", "51", "3",
	}, stat.Fields())
}
