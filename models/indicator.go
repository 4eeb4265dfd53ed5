package models

import "time"

// World Bank indicator identifiers.
const (
	IndicatorGDP          = "NY.GDP.MKTP.CD"
	IndicatorGDPPerCapita = "NY.GDP.PCAP.CD"
	IndicatorGDPGrowth    = "NY.GDP.MKTP.KD.ZG"
	IndicatorInflation    = "FP.CPI.TOTL.ZG"
	IndicatorUnemployment = "SL.UEM.TOTL.ZS"
	IndicatorTradeBalance = "NE.RSB.GNFS.CD"
	IndicatorPopulation   = "SP.POP.TOTL"
)

// EconomicIndicatorIDs maps the economic indicator keys to their ids.
var EconomicIndicatorIDs = map[string]string{
	"inflation":    IndicatorInflation,
	"unemployment": IndicatorUnemployment,
	"tradeBalance": IndicatorTradeBalance,
	"population":   IndicatorPopulation,
}

type Observation struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// IndicatorSeries is one indicator's history for one country. History is
// oldest to newest. A series whose Err is set carries no data.
type IndicatorSeries struct {
	CountryCode string        `json:"countryCode"`
	CountryName string        `json:"countryName"`
	IndicatorID string        `json:"indicatorId"`
	Current     *float64      `json:"current"`
	CurrentYear int           `json:"currentYear,omitempty"`
	History     []Observation `json:"history"`
	Err         string        `json:"error,omitempty"`
}

// Available reports whether the series has a current value.
func (s IndicatorSeries) Available() bool {
	return s.Err == "" && s.Current != nil
}

// UnavailableSeries is the error-state series returned instead of an error.
func UnavailableSeries(countryCode, indicatorID, msg string) IndicatorSeries {
	return IndicatorSeries{
		CountryCode: countryCode,
		CountryName: "Unknown",
		IndicatorID: indicatorID,
		History:     []Observation{},
		Err:         msg,
	}
}

// IndicatorValue is the latest observation of a single indicator.
type IndicatorValue struct {
	Value *float64 `json:"value"`
	Year  int      `json:"year,omitempty"`
	Err   string   `json:"error,omitempty"`
}

type GDPData struct {
	CountryCode  string          `json:"countryCode"`
	CountryName  string          `json:"countryName"`
	GDP          IndicatorSeries `json:"gdp"`
	GDPPerCapita IndicatorSeries `json:"gdpPerCapita"`
	GDPGrowth    IndicatorSeries `json:"gdpGrowth"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}
