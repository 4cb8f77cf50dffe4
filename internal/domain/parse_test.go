package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validLine  = "2023-06-15,30.0,20.0,25.0,5.2,12.0,28800,Medellín,6.2518,-75.5636"
	headerLine = "time,temperature_2m_max,temperature_2m_min,temperature_2m_mean,precipitation_sum,windspeed_10m_max,sunshine_duration,city,latitude,longitude"
)

func TestIsHeaderLine(t *testing.T) {
	assert.True(t, IsHeaderLine(headerLine))
	assert.True(t, IsHeaderLine("time,temperature_2m_max"))
	assert.False(t, IsHeaderLine(validLine))
	assert.False(t, IsHeaderLine(""))
}

func TestParseTemperatureLine(t *testing.T) {
	t.Run("valid line", func(t *testing.T) {
		obs, err := ParseTemperatureLine(validLine)
		require.NoError(t, err)

		assert.Equal(t, "Medellín", obs.City)
		assert.Equal(t, 2023, obs.Year)
		assert.Equal(t, 6, obs.Month)
		assert.Equal(t, 15, obs.Day)
		assert.Equal(t, 30.0, obs.TempMax)
		assert.Equal(t, 20.0, obs.TempMin)
		assert.Equal(t, 25.0, obs.TempMean)
		assert.Equal(t, MonthKey{City: "Medellín", Year: 2023, Month: 6}, obs.Key())
	})

	t.Run("quoted city keeps its comma", func(t *testing.T) {
		line := `2023-06-15,30.0,20.0,25.0,0,12.0,28800,"Bogotá, D.C.",4.7110,-74.0721`
		obs, err := ParseTemperatureLine(line)
		require.NoError(t, err)
		assert.Equal(t, "Bogotá, D.C.", obs.City)
	})

	t.Run("eight fields is enough", func(t *testing.T) {
		obs, err := ParseTemperatureLine("2023-01-02,28.1,17.3,22.4,0.0,9.5,30000,Cali")
		require.NoError(t, err)
		assert.Equal(t, "Cali", obs.City)
	})

	tests := []struct {
		name   string
		line   string
		reason Reason
	}{
		{"six fields", "2023-06-15,30.0,20.0,25.0,5.2,12.0", ReasonShapeMismatch},
		{"empty line refused by csv reader", "", ReasonShapeMismatch},
		{"bad date", "15/06/2023,30.0,20.0,25.0,5.2,12.0,28800,Medellín", ReasonDateFormat},
		{"date with time suffix", "2023-06-15T00:00,30.0,20.0,25.0,5.2,12.0,28800,Medellín", ReasonDateFormat},
		{"missing max temp", "2023-06-15,,20.0,25.0,5.2,12.0,28800,Medellín", ReasonMissingValue},
		{"missing mean temp", "2023-06-15,30.0,20.0,,5.2,12.0,28800,Medellín", ReasonMissingValue},
		{"non-numeric min temp", "2023-06-15,30.0,cold,25.0,5.2,12.0,28800,Medellín", ReasonNumericParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemperatureLine(tt.line)
			require.Error(t, err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.reason, pe.Reason)
		})
	}
}

func TestParsePrecipitationLine(t *testing.T) {
	t.Run("valid line", func(t *testing.T) {
		obs, err := ParsePrecipitationLine(validLine)
		require.NoError(t, err)
		assert.Equal(t, 5.2, obs.Precipitation)
		assert.Equal(t, "Medellín", obs.City)
	})

	t.Run("empty precipitation defaults to zero", func(t *testing.T) {
		obs, err := ParsePrecipitationLine("2023-06-15,30.0,20.0,25.0,,12.0,28800,Medellín")
		require.NoError(t, err)
		assert.Equal(t, 0.0, obs.Precipitation)
	})

	t.Run("missing temperatures do not matter", func(t *testing.T) {
		obs, err := ParsePrecipitationLine("2023-06-15,,,,10.5,12.0,28800,Bogotá")
		require.NoError(t, err)
		assert.Equal(t, 10.5, obs.Precipitation)
	})

	t.Run("non-numeric precipitation", func(t *testing.T) {
		_, err := ParsePrecipitationLine("2023-06-15,30.0,20.0,25.0,wet,12.0,28800,Medellín")
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, ReasonNumericParse, pe.Reason)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		_, err := ParsePrecipitationLine("2023-06-15,5.2,Bogotá")
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, ReasonShapeMismatch, pe.Reason)
	})
}

func TestParseErrorMessage(t *testing.T) {
	err := parseErrorf(ReasonDateFormat, "date %q", "junk")
	assert.Contains(t, err.Error(), "date_format")
	assert.Contains(t, err.Error(), "junk")
}
