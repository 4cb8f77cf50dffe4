// Package domain models daily weather observations for Colombian cities and
// the monthly and seasonal statistics derived from them.
//
// # Data Source
//
// Raw observations come from the Open-Meteo historical archive
// (https://archive-api.open-meteo.com/v1/archive), flattened by the fetch
// command into one CSV row per city per day:
//
//	time,temperature_2m_max,temperature_2m_min,temperature_2m_mean,
//	precipitation_sum,windspeed_10m_max,sunshine_duration,city[,latitude,longitude]
//
// Dates use strict YYYY-MM-DD. Temperature columns are degrees Celsius,
// precipitation is millimeters. A repeated header row inside a concatenated
// input file is recognized by the literal prefix "time,temperature" and
// skipped rather than rejected.
//
// # Grouping Keys
//
// Records group under structured keys ([MonthKey] for stage one, [SeasonKey]
// after seasonal reclassification), never under concatenated strings. A city name containing an underscore or comma therefore cannot
// collide with another key, and no parse-back of keys is ever needed.
//
// # Seasons
//
// Colombia has no temperate four-season cycle; the labels follow the local
// rainfall calendar instead:
//
//	Dec–Feb  "Verano"          dry season
//	Mar–May  "Transición"      transition into the rains
//	Jun–Aug  "Invierno"        wet season
//	Sep–Nov  "Lluvias_Tardías" late rains
//
// [SeasonOf] is total over months 1..12; the four buckets partition the
// domain with no gaps or overlaps. A month keeps the calendar year it was
// observed in, so December 2023 belongs to Verano 2023 even though the dry
// season runs into 2024.
//
// # Aggregation Rules
//
// Averages are rounded to two decimals with round-half-to-even. A key with no
// contributing records never appears in any output: groups exist only because
// at least one record was observed, so no reducer ever divides by zero.
// Seasonal averages divide by the number of months actually present in the
// group, not by the nominal three-month season length.
package domain
