package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceTemperatureMonth(t *testing.T) {
	key := MonthKey{City: "Medellín", Year: 2023, Month: 6}

	t.Run("constant month", func(t *testing.T) {
		// 30 identical days: averages equal the daily values, count is 30.
		group := make([]DailyObservation, 0, 30)
		for day := 1; day <= 30; day++ {
			group = append(group, DailyObservation{
				City: "Medellín", Year: 2023, Month: 6, Day: day,
				TempMax: 30, TempMin: 20, TempMean: 25,
			})
		}

		stat := ReduceTemperatureMonth(key, group)

		assert.Equal(t, 30.0, stat.AvgMax)
		assert.Equal(t, 20.0, stat.AvgMin)
		assert.Equal(t, 25.0, stat.AvgMean)
		assert.Equal(t, 30.0, stat.MaxRecorded)
		assert.Equal(t, 20.0, stat.MinRecorded)
		assert.Equal(t, 30, stat.DayCount)
	})

	t.Run("mixed values round half to even", func(t *testing.T) {
		group := []DailyObservation{
			{TempMax: 30.1, TempMin: 20.0, TempMean: 25.0},
			{TempMax: 30.2, TempMin: 18.5, TempMean: 24.0},
		}

		stat := ReduceTemperatureMonth(key, group)

		// (30.1+30.2)/2 = 30.15 → banker's rounding keeps 30.15 exact at two
		// decimals; max/min pick the extremes.
		assert.InDelta(t, 30.15, stat.AvgMax, 1e-9)
		assert.InDelta(t, 19.25, stat.AvgMin, 1e-9)
		assert.Equal(t, 30.2, stat.MaxRecorded)
		assert.Equal(t, 18.5, stat.MinRecorded)
		assert.Equal(t, 2, stat.DayCount)
	})

	t.Run("order independent", func(t *testing.T) {
		forward := []DailyObservation{
			{TempMax: 28, TempMin: 17, TempMean: 22},
			{TempMax: 31, TempMin: 19, TempMean: 25},
			{TempMax: 29, TempMin: 16, TempMean: 23},
		}
		reversed := []DailyObservation{forward[2], forward[1], forward[0]}

		assert.Equal(t, ReduceTemperatureMonth(key, forward), ReduceTemperatureMonth(key, reversed))
	})
}

func TestFinalizeTemperatureRow(t *testing.T) {
	stat := MonthlyTemperatureStat{
		Key:         MonthKey{City: "Medellín", Year: 2023, Month: 6},
		AvgMax:      30,
		AvgMin:      20,
		AvgMean:     25,
		MaxRecorded: 31.5,
		MinRecorded: 18.2,
		DayCount:    30,
	}

	row := FinalizeTemperatureRow(stat)

	assert.Equal(t, "June", row.MonthName)
	assert.Equal(t, []string{
		"Medellín", "2023", "06", "June",
		"30.0", "20.0", "25.0", "31.5", "18.2", "30",
	}, row.Fields())
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{30.0, 30.0},
		{3.751, 3.75},
		{3.756, 3.76},
		{0.125, 0.12}, // exact binary half rounds to even
		{0.375, 0.38},
		{-1.005, -1.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 1e-9, "Round2(%v)", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "30.0", FormatAmount(30))
	assert.Equal(t, "3.75", FormatAmount(3.75))
	assert.Equal(t, "0.0", FormatAmount(0))
	assert.Equal(t, "-2.5", FormatAmount(-2.5))
}
