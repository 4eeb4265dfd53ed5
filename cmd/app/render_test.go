package main

import (
	"bytes"
	"testing"

	"github.com/AbdulWasayUl/country-explorer/internal/explore"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/stretchr/testify/assert"
)

func ptrInt(v int64) *int64 { return &v }

func ptrFloat(v float64) *float64 { return &v }

func france() models.CountryRecord {
	return models.CountryRecord{
		CCA2:       "FR",
		CCA3:       "FRA",
		Name:       models.CountryName{Common: "France", Official: "French Republic"},
		Region:     "Europe",
		Subregion:  "Western Europe",
		Capital:    []string{"Paris"},
		Population: ptrInt(68_000_000),
		Area:       ptrFloat(551_695),
		Languages:  map[string]string{"fra": "French"},
		Currencies: map[string]models.Currency{"EUR": {Name: "Euro", Symbol: "€"}},
		Borders:    []string{"BEL", "ESP"},
		Timezones:  []string{"UTC+01:00"},
	}
}

func TestFormatCountryList(t *testing.T) {
	atlantis := models.CountryRecord{CCA3: "ATL", Name: models.CountryName{Common: "Atlantis"}}

	var buf bytes.Buffer
	formatCountryList(&buf, []models.CountryRecord{france(), atlantis})

	output := buf.String()
	assert.Contains(t, output, "CODE")
	assert.Contains(t, output, "POPULATION")
	assert.Contains(t, output, "France")
	assert.Contains(t, output, "68,000,000")
	assert.Contains(t, output, "551,695 km²")
	assert.Contains(t, output, "Atlantis")
	assert.Contains(t, output, "N/A")
}

func TestFormatCountryDetail(t *testing.T) {
	var buf bytes.Buffer
	formatCountryDetail(&buf, france(), map[string]string{"BEL": "Belgium"}, true)

	output := buf.String()
	assert.Contains(t, output, "France (FRA) ★")
	assert.Contains(t, output, "French Republic")
	assert.Contains(t, output, "Europe / Western Europe")
	assert.Contains(t, output, "68,000,000 (Large)")
	assert.Contains(t, output, "123.26 people/km²")
	assert.Contains(t, output, "Euro (EUR, €)")
	assert.Contains(t, output, "Belgium, ESP")
}

func TestFormatComparison(t *testing.T) {
	gdp := map[string]models.GDPData{
		"FRA": {GDP: models.IndicatorSeries{Current: ptrFloat(3.03e12), CurrentYear: 2023}},
	}
	spain := models.CountryRecord{CCA3: "ESP", Name: models.CountryName{Common: "Spain"}}

	var buf bytes.Buffer
	formatComparison(&buf, []models.CountryRecord{france(), spain}, gdp)

	output := buf.String()
	assert.Contains(t, output, "France")
	assert.Contains(t, output, "Spain")
	assert.Contains(t, output, "$3.03 Trillion (2023)")
	assert.Contains(t, output, "GDP growth")
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	formatSummary(&buf, explore.Summarize([]models.CountryRecord{france()}))

	output := buf.String()
	assert.Contains(t, output, "Countries:")
	assert.Contains(t, output, "68,000,000")
	assert.Contains(t, output, "Europe")
	assert.Contains(t, output, " 1. France")
}

func TestFormatEconomy_Unavailable(t *testing.T) {
	gdp := models.GDPData{GDP: models.UnavailableSeries("XXX", models.IndicatorGDP, "boom")}
	indicators := map[string]models.IndicatorValue{
		"inflation": {Value: ptrFloat(2.5), Year: 2023},
		"population": {Value: ptrFloat(68_170_228), Year: 2023},
	}

	var buf bytes.Buffer
	formatEconomy(&buf, gdp, indicators)

	output := buf.String()
	assert.Contains(t, output, "GDP:")
	assert.Contains(t, output, "N/A")
	assert.Contains(t, output, "2.50% (2023)")
	assert.Contains(t, output, "68,170,228 (2023)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "France", truncate("France", 10))
	assert.Equal(t, "South Geo...", truncate("South Georgia and the South Sandwich Islands", 12))
}
