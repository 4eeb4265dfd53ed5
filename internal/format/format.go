// Package format renders record and indicator values for display. Every
// helper prints models.NotAvailable for an absent value.
package format

import (
	"math"

	"github.com/AbdulWasayUl/country-explorer/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Integer groups thousands: 68000000 -> "68,000,000".
func Integer(n int64) string {
	return printer.Sprintf("%d", n)
}

// Number renders an optional count such as a population.
func Number(n *int64) string {
	if n == nil {
		return models.NotAvailable
	}
	return Integer(*n)
}

// Area renders square kilometres, keeping two decimals only for fractional areas.
func Area(a *float64) string {
	if a == nil {
		return models.NotAvailable
	}
	if *a == math.Trunc(*a) {
		return printer.Sprintf("%.0f km²", *a)
	}
	return printer.Sprintf("%.2f km²", *a)
}

// Density renders people per km² with two decimals.
func Density(r models.CountryRecord) string {
	d, ok := r.Density()
	if !ok {
		return models.NotAvailable
	}
	return printer.Sprintf("%.2f people/km²", d)
}

// GDP abbreviates to Trillion, Billion or Million with two decimals. Negative
// values, such as a trade deficit, keep their sign in front of the currency.
func GDP(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	sign, x := "", *v
	if x < 0 {
		sign, x = "-", -x
	}
	switch {
	case x >= 1e12:
		return printer.Sprintf("%s$%.2f Trillion", sign, x/1e12)
	case x >= 1e9:
		return printer.Sprintf("%s$%.2f Billion", sign, x/1e9)
	case x >= 1e6:
		return printer.Sprintf("%s$%.2f Million", sign, x/1e6)
	}
	return printer.Sprintf("%s$%.0f", sign, x)
}

// GDPPerCapita renders whole dollars with grouping.
func GDPPerCapita(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	return printer.Sprintf("$%.0f", *v)
}

// GrowthRate renders a signed percentage: 2.5 -> "+2.50%".
func GrowthRate(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	sign := ""
	if *v >= 0 {
		sign = "+"
	}
	return printer.Sprintf("%s%.2f%%", sign, *v)
}

// Percent renders a rate such as inflation: 3.14159 -> "3.14%".
func Percent(v *float64) string {
	if v == nil {
		return models.NotAvailable
	}
	return printer.Sprintf("%.2f%%", *v)
}

// PopulationCategory buckets a population; the bounds are exclusive.
func PopulationCategory(population int64) string {
	switch {
	case population > 100_000_000:
		return "Very Large"
	case population > 50_000_000:
		return "Large"
	case population > 10_000_000:
		return "Medium"
	case population > 1_000_000:
		return "Small"
	}
	return "Very Small"
}
