// Command validate checks finished result files against the pipeline's
// output invariants: column counts, strictly increasing months per city-year,
// known season labels, and sane divisor fields. It exists to catch a broken
// run before results are published or served.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -temperature data/processed/temperature_results.csv \
//	  -precipitation data/processed/precipitation_results.csv
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jrendon/weather-aggregation/internal/domain"
	"github.com/jrendon/weather-aggregation/internal/report"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	tempPath := flag.String("temperature", "", "temperature results CSV")
	precipPath := flag.String("precipitation", "", "precipitation results CSV")
	flag.Parse()

	if *tempPath == "" || *precipPath == "" {
		flag.Usage()
		fmt.Fprintln(os.Stderr, "missing required flags: -temperature, -precipitation")
		os.Exit(2)
	}

	phases := []*phase{
		validateTemperature(*tempPath),
		validatePrecipitation(*precipPath),
	}

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
}

func validateTemperature(path string) *phase {
	p := &phase{name: "temperature results"}

	records, err := report.LoadTemperature(path)
	if err != nil {
		p.errorf("load: %v", err)
		return p
	}
	if len(records) == 0 {
		p.errorf("no records")
		return p
	}

	lastMonth := make(map[domain.YearKey]int)
	for i, rec := range records {
		if rec.Month < 1 || rec.Month > 12 {
			p.errorf("row %d: month %d outside 1..12", i+1, rec.Month)
			continue
		}
		if rec.Days < 1 {
			p.errorf("row %d: days_recorded %d, want >= 1", i+1, rec.Days)
		}
		if rec.Min > rec.Max {
			p.errorf("row %d: min_temp %.2f exceeds max_temp %.2f", i+1, rec.Min, rec.Max)
		}

		key := domain.YearKey{City: rec.City, Year: rec.Year}
		if prev, seen := lastMonth[key]; seen && rec.Month <= prev {
			p.errorf("row %d: month %02d not strictly after %02d for %s %d",
				i+1, rec.Month, prev, rec.City, rec.Year)
		}
		lastMonth[key] = rec.Month
	}
	return p
}

func validatePrecipitation(path string) *phase {
	p := &phase{name: "precipitation results"}

	records, err := report.LoadPrecipitation(path)
	if err != nil {
		p.errorf("load: %v", err)
		return p
	}
	if len(records) == 0 {
		p.errorf("no records")
		return p
	}

	for i, rec := range records {
		if domain.Season(rec.Season).CalendarOrder() > 3 {
			p.errorf("row %d: unknown season %q", i+1, rec.Season)
		}
		if rec.MonthsInSeason < 1 || rec.MonthsInSeason > 3 {
			p.errorf("row %d: months_in_season %d outside 1..3", i+1, rec.MonthsInSeason)
		}
		if rec.MaxMonthly > rec.Total+0.01 {
			p.errorf("row %d: max_monthly %.2f exceeds total %.2f", i+1, rec.MaxMonthly, rec.Total)
		}
		if rec.TotalRainyDays < 0 {
			p.errorf("row %d: negative total_rainy_days %d", i+1, rec.TotalRainyDays)
		}
	}
	return p
}
