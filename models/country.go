package models

// NotAvailable is rendered wherever an optional field is absent.
const NotAvailable = "N/A"

type CountryName struct {
	Common   string                `json:"common"`
	Official string                `json:"official"`
	Native   map[string]NativeName `json:"nativeName,omitempty"`
}

type NativeName struct {
	Official string `json:"official"`
	Common   string `json:"common"`
}

type Currency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CountryRecord is one country or territory. CCA3 is the primary key.
// Records are never mutated after normalization; derived views build new slices.
type CountryRecord struct {
	CCA2          string              `json:"cca2"`
	CCA3          string              `json:"cca3"`
	Name          CountryName         `json:"name"`
	Region        string              `json:"region"`
	Subregion     string              `json:"subregion"`
	Capital       []string            `json:"capital"`
	Area          *float64            `json:"area,omitempty"`
	LatLng        *LatLng             `json:"latlng,omitempty"`
	Landlocked    bool                `json:"landlocked"`
	Independent   bool                `json:"independent"`
	UnMember      bool                `json:"unMember"`
	Borders       []string            `json:"borders"`
	Continents    []string            `json:"continents"`
	Timezones     []string            `json:"timezones"`
	Population    *int64              `json:"population,omitempty"`
	Currencies    map[string]Currency `json:"currencies"`
	Languages     map[string]string   `json:"languages"`
	FlagURL       string              `json:"flag"`
	CoatOfArmsURL string              `json:"coatOfArms,omitempty"`
}

// PopulationOrZero is the population used by filters, sorts and sums.
func (c CountryRecord) PopulationOrZero() int64 {
	if c.Population == nil {
		return 0
	}
	return *c.Population
}

// AreaOrZero is the area used by sorts and sums.
func (c CountryRecord) AreaOrZero() float64 {
	if c.Area == nil {
		return 0
	}
	return *c.Area
}

// Density returns people per km². ok is false when population is absent
// or area is absent or zero.
func (c CountryRecord) Density() (density float64, ok bool) {
	if c.Population == nil || c.Area == nil || *c.Area <= 0 {
		return 0, false
	}
	return float64(*c.Population) / *c.Area, true
}

// PrimaryCapital returns the first capital, or NotAvailable.
func (c CountryRecord) PrimaryCapital() string {
	if len(c.Capital) == 0 || c.Capital[0] == "" {
		return NotAvailable
	}
	return c.Capital[0]
}

// LanguageNames returns the language display names.
func (c CountryRecord) LanguageNames() []string {
	names := make([]string, 0, len(c.Languages))
	for _, name := range c.Languages {
		names = append(names, name)
	}
	return names
}

// CurrencyNames returns the currency display names.
func (c CountryRecord) CurrencyNames() []string {
	names := make([]string, 0, len(c.Currencies))
	for _, cur := range c.Currencies {
		names = append(names, cur.Name)
	}
	return names
}
