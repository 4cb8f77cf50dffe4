package openmeteo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// City is one acquisition target from the cities file.
type City struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// LoadCities reads the YAML cities file:
//
//	cities:
//	  - name: Medellín
//	    lat: 6.2518
//	    lon: -75.5636
func LoadCities(path string) ([]City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cities file: %w", err)
	}

	var doc struct {
		Cities []City `yaml:"cities"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse cities file: %w", err)
	}
	if len(doc.Cities) == 0 {
		return nil, fmt.Errorf("cities file %s lists no cities", path)
	}
	for i, c := range doc.Cities {
		if c.Name == "" {
			return nil, fmt.Errorf("cities file %s: entry %d has no name", path, i)
		}
	}
	return doc.Cities, nil
}
