package country

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/api"
	"github.com/AbdulWasayUl/country-explorer/internal/cache"
	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const franceJSON = `{
	"name": {
		"common": "France",
		"official": "French Republic",
		"nativeName": {"fra": {"official": "République française", "common": "France"}}
	},
	"cca2": "FR",
	"cca3": "FRA",
	"independent": true,
	"unMember": true,
	"capital": ["Paris"],
	"region": "Europe",
	"subregion": "Western Europe",
	"population": 67750000,
	"area": 551695,
	"latlng": [46, 2],
	"borders": ["AND", "BEL", "DEU"],
	"timezones": ["UTC+01:00"],
	"languages": {"fra": "French"},
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"flags": {"svg": "https://flagcdn.com/fr.svg", "png": "https://flagcdn.com/w320/fr.png"},
	"coatOfArms": {"svg": "https://mainfacts.com/fr.svg"}
}`

func TestParseData(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		validate    func(*testing.T, []models.CountryRecord)
	}{
		{
			name:  "array with one full entry",
			input: "[" + franceJSON + "]",
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				fr := recs[0]
				assert.Equal(t, "FRA", fr.CCA3)
				assert.Equal(t, "FR", fr.CCA2)
				assert.Equal(t, "France", fr.Name.Common)
				assert.Equal(t, "French Republic", fr.Name.Official)
				assert.Equal(t, "République française", fr.Name.Native["fra"].Official)
				assert.Equal(t, "Paris", fr.PrimaryCapital())
				require.NotNil(t, fr.Population)
				assert.Equal(t, int64(67750000), *fr.Population)
				require.NotNil(t, fr.Area)
				assert.Equal(t, 551695.0, *fr.Area)
				require.NotNil(t, fr.LatLng)
				assert.Equal(t, 46.0, fr.LatLng.Lat)
				assert.Equal(t, []string{"AND", "BEL", "DEU"}, fr.Borders)
				assert.Equal(t, "Euro", fr.Currencies["EUR"].Name)
				assert.Equal(t, "French", fr.Languages["fra"])
				assert.Equal(t, "https://flagcdn.com/fr.svg", fr.FlagURL)
				assert.Equal(t, "https://mainfacts.com/fr.svg", fr.CoatOfArmsURL)
				assert.True(t, fr.Independent)
				assert.True(t, fr.UnMember)
			},
		},
		{
			name:  "bare object",
			input: franceJSON,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				assert.Equal(t, "FRA", recs[0].CCA3)
			},
		},
		{
			name:  "absent optional fields stay absent",
			input: `[{"name": {"common": "Antarctica"}, "cca3": "ata", "region": "Antarctic", "flags": {"png": "https://flagcdn.com/aq.png"}}]`,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				aq := recs[0]
				assert.Equal(t, "ATA", aq.CCA3)
				assert.Nil(t, aq.Population)
				assert.Nil(t, aq.Area)
				assert.Nil(t, aq.LatLng)
				assert.Equal(t, "Antarctica", aq.Name.Official)
				assert.Equal(t, models.NotAvailable, aq.PrimaryCapital())
				assert.Equal(t, "https://flagcdn.com/aq.png", aq.FlagURL)
				assert.NotNil(t, aq.Borders)
				assert.Empty(t, aq.Currencies)
				assert.Equal(t, int64(0), aq.PopulationOrZero())
			},
		},
		{
			name:  "zero population and area are real values",
			input: `[{"name": {"common": "Test"}, "cca3": "TST", "population": 0, "area": 0}]`,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				require.NotNil(t, recs[0].Population)
				require.NotNil(t, recs[0].Area)
				_, ok := recs[0].Density()
				assert.False(t, ok)
			},
		},
		{
			name:  "entries without cca3 are dropped and duplicates keep the first",
			input: `[{"name": {"common": "Nowhere"}}, {"name": {"common": "First"}, "cca3": "DUP"}, {"name": {"common": "Second"}, "cca3": "DUP"}]`,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				assert.Equal(t, "First", recs[0].Name.Common)
			},
		},
		{
			name:  "malformed latlng is dropped",
			input: `[{"name": {"common": "X"}, "cca3": "XXX", "latlng": [1]}]`,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				assert.Nil(t, recs[0].LatLng)
			},
		},
		{
			name:  "empty array",
			input: `[]`,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				assert.Empty(t, recs)
			},
		},
		{
			name:        "invalid json",
			input:       `{invalid json}`,
			expectError: true,
		},
		{
			name:        "empty body",
			input:       "   ",
			expectError: true,
		},
		{
			name:  "special characters in names",
			input: `[{"name": {"common": "Côte d'Ivoire", "official": "République de Côte d'Ivoire"}, "cca3": "CIV", "cca2": "CI"}]`,
			validate: func(t *testing.T, recs []models.CountryRecord) {
				require.Len(t, recs, 1)
				assert.Equal(t, "Côte d'Ivoire", recs[0].Name.Common)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ParseData([]byte(tt.input))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, recs)
			}
		})
	}
}

type recordedServer struct {
	*httptest.Server
	hits  int32
	paths chan string
}

func newRestCountriesServer(t *testing.T) *recordedServer {
	t.Helper()
	rs := &recordedServer{paths: make(chan string, 64)}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&rs.hits, 1)
		rs.paths <- r.URL.RequestURI()
		switch {
		case r.URL.Path == "/v3.1/all":
			fmt.Fprint(w, "["+franceJSON+`,{"name":{"common":"Belgium","official":"Kingdom of Belgium"},"cca3":"BEL","cca2":"BE","region":"Europe","population":11555997}]`)
		case r.URL.Path == "/v3.1/alpha/FRA" || r.URL.Path == "/v3.1/alpha/FR":
			fmt.Fprint(w, "["+franceJSON+"]")
		case r.URL.Path == "/v3.1/alpha" && r.URL.Query().Get("codes") == "BEL,DEU":
			fmt.Fprint(w, `[{"name":{"common":"Belgium"},"cca3":"BEL"},{"name":{"common":"Germany"},"cca3":"DEU"}]`)
		case r.URL.Path == "/v3.1/region/Europe":
			fmt.Fprint(w, "["+franceJSON+"]")
		case r.URL.Path == "/v3.1/name/fran":
			fmt.Fprint(w, "["+franceJSON+"]")
		case r.URL.Path == "/v3.1/broken/all":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status":404,"message":"Not Found"}`)
		}
	}))
	t.Cleanup(rs.Close)
	return rs
}

func newTestService(baseURL string) *Service {
	client := api.NewClient(models.RateLimitSettings{MaxRequests: 100, PerDuration: time.Second}, 5*time.Second)
	return NewService(baseURL, api.NewCachedFetcher(client, cache.New("countries", 30*time.Minute)))
}

func TestFetchAll(t *testing.T) {
	srv := newRestCountriesServer(t)
	svc := newTestService(srv.URL + "/v3.1/")

	recs, err := svc.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "FRA", recs[0].CCA3)
	assert.Equal(t, "BEL", recs[1].CCA3)
	assert.Equal(t, "/v3.1/all?fields="+AllFields, <-srv.paths)

	_, err = svc.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&srv.hits), "second call is served from cache")
}

func TestFetchAll_NetworkError(t *testing.T) {
	srv := newRestCountriesServer(t)
	svc := newTestService(srv.URL + "/v3.1/broken")

	_, err := svc.FetchAll(context.Background())
	require.Error(t, err)
	assert.True(t, errs.IsNetwork(err))
	assert.Equal(t, http.StatusServiceUnavailable, errs.StatusCode(err))
}

func TestFetchByCode(t *testing.T) {
	srv := newRestCountriesServer(t)
	svc := newTestService(srv.URL + "/v3.1")

	tests := []struct {
		name     string
		code     string
		wantCCA3 string
		notFound bool
	}{
		{name: "alpha-3", code: "FRA", wantCCA3: "FRA"},
		{name: "alpha-2", code: "FR", wantCCA3: "FRA"},
		{name: "unknown code", code: "ZZZ", notFound: true},
		{name: "blank code", code: "  ", notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := svc.FetchByCode(context.Background(), tt.code)
			if tt.notFound {
				require.Error(t, err)
				assert.True(t, IsNotFound(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCCA3, rec.CCA3)
		})
	}
}

func TestFetchByCodes(t *testing.T) {
	srv := newRestCountriesServer(t)
	svc := newTestService(srv.URL + "/v3.1")
	ctx := context.Background()

	recs, err := svc.FetchByCodes(ctx, []string{"BEL", "DEU"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "DEU", recs[1].CCA3)

	recs, err = svc.FetchByCodes(ctx, []string{"QQQ"})
	require.NoError(t, err, "unknown codes are an empty result")
	assert.Empty(t, recs)

	before := atomic.LoadInt32(&srv.hits)
	recs, err = svc.FetchByCodes(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, before, atomic.LoadInt32(&srv.hits), "empty code list makes no request")
}

func TestSearchAndRegion(t *testing.T) {
	srv := newRestCountriesServer(t)
	svc := newTestService(srv.URL + "/v3.1")
	ctx := context.Background()

	recs, err := svc.SearchByName(ctx, "fran")
	require.NoError(t, err)
	require.Len(t, recs, 1)

	recs, err = svc.SearchByName(ctx, "atlantis")
	require.NoError(t, err)
	assert.Empty(t, recs)

	recs, err = svc.FetchByRegion(ctx, "Europe")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Europe", recs[0].Region)
}
