package country

// RestCountriesCountry is one element of a REST Countries v3.1 response.
// Optional numbers are pointers so an absent field stays distinguishable from zero.
type RestCountriesCountry struct {
	Name struct {
		Common     string `json:"common"`
		Official   string `json:"official"`
		NativeName map[string]struct {
			Official string `json:"official"`
			Common   string `json:"common"`
		} `json:"nativeName"`
	} `json:"name"`
	CCA2        string `json:"cca2"`
	CCA3        string `json:"cca3"`
	Independent *bool  `json:"independent"`
	UnMember    bool   `json:"unMember"`
	Currencies  map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Languages  map[string]string `json:"languages"`
	Population *int64            `json:"population"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Area       *float64          `json:"area"`
	Capital    []string          `json:"capital"`
	LatLng     []float64         `json:"latlng"`
	Landlocked bool              `json:"landlocked"`
	Borders    []string          `json:"borders"`
	Continents []string          `json:"continents"`
	Timezones  []string          `json:"timezones"`
	Flags      struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
		Alt string `json:"alt"`
	} `json:"flags"`
	CoatOfArms struct {
		SVG string `json:"svg"`
		PNG string `json:"png"`
	} `json:"coatOfArms"`
}

type RestCountriesAPIResponse []RestCountriesCountry
