// Command genmock generates a synthetic raw input CSV for exercising the
// pipelines without hitting the Open-Meteo API. Values are drawn from a
// seeded generator so fixtures are reproducible.
//
// Usage:
//
//	go run ./cmd/genmock -out data/raw/weather_data.csv -days 365 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jrendon/weather-aggregation/internal/adapter/openmeteo"
)

// cities mirrors the default acquisition targets.
var cities = []openmeteo.City{
	{Name: "Medellín", Lat: 6.2518, Lon: -75.5636},
	{Name: "Bogotá", Lat: 4.7110, Lon: -74.0721},
	{Name: "Cali", Lat: 3.4516, Lon: -76.5320},
	{Name: "Barranquilla", Lat: 10.9639, Lon: -74.7964},
	{Name: "Cartagena", Lat: 10.3910, Lon: -75.4794},
}

// cityClimate is a crude per-city baseline so the mock data looks plausible:
// Bogotá cold and wet, the coastal cities hot.
var cityClimate = map[string]struct{ meanTemp, rainChance float64 }{
	"Medellín":     {22, 0.5},
	"Bogotá":       {14, 0.55},
	"Cali":         {24, 0.45},
	"Barranquilla": {28, 0.3},
	"Cartagena":    {28, 0.3},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the generated input CSV")
	days := flag.Int("days", 365, "number of days per city, starting 2023-01-01")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	rng := rand.New(rand.NewPCG(*seed, 0))
	start := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

	for i, city := range cities {
		records := make([]openmeteo.DailyRecord, 0, *days)
		climate := cityClimate[city.Name]
		for d := range *days {
			date := start.AddDate(0, 0, d)
			mean := climate.meanTemp + rng.NormFloat64()*1.5
			spread := 4 + rng.Float64()*3

			var precip float64
			if rng.Float64() < climate.rainChance {
				precip = round1(rng.Float64() * 40)
			}

			tempMax := round1(mean + spread)
			tempMin := round1(mean - spread)
			tempMean := round1(mean)
			wind := round1(5 + rng.Float64()*20)
			sunshine := round1(rng.Float64() * 43200)

			records = append(records, openmeteo.DailyRecord{
				Date:          date.Format("2006-01-02"),
				TempMax:       &tempMax,
				TempMin:       &tempMin,
				TempMean:      &tempMean,
				Precipitation: &precip,
				WindspeedMax:  &wind,
				Sunshine:      &sunshine,
			})
		}

		if err := openmeteo.WriteCSV(f, city, records, i == 0); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %d cities x %d days to %s\n", len(cities), *days, *out)
	return nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
