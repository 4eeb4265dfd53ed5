package country

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/AbdulWasayUl/country-explorer/internal/api"
	"github.com/AbdulWasayUl/country-explorer/internal/errs"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// AllFields is the projection requested for the full country list.
const AllFields = "name,capital,population,region,subregion,flags,cca3,cca2,languages,currencies,area,borders,timezones,latlng"

// Service reads the REST Countries API through a fetcher, normally a cached one.
type Service struct {
	BaseURL string
	Client  api.Fetcher
}

func NewService(baseURL string, client api.Fetcher) *Service {
	return &Service{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// FetchAll returns every country. Any network failure is returned as is.
func (s *Service) FetchAll(ctx context.Context) ([]models.CountryRecord, error) {
	u := fmt.Sprintf("%s/all?fields=%s", s.BaseURL, AllFields)
	data, err := s.Client.Do(ctx, u, nil)
	if err != nil {
		return nil, eris.Wrap(err, "country: fetch all")
	}
	records, err := ParseData(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched %d countries", len(records))
	return records, nil
}

// FetchByCode returns one country by cca2 or cca3 code, or errs.ErrNotFound.
func (s *Service) FetchByCode(ctx context.Context, code string) (models.CountryRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.CountryRecord{}, eris.Wrap(errs.ErrNotFound, "country: empty code")
	}

	u := fmt.Sprintf("%s/alpha/%s", s.BaseURL, url.PathEscape(code))
	data, err := s.Client.Do(ctx, u, nil)
	if err != nil {
		if errs.StatusCode(err) == http.StatusNotFound {
			return models.CountryRecord{}, eris.Wrapf(errs.ErrNotFound, "country: code %s", code)
		}
		return models.CountryRecord{}, eris.Wrapf(err, "country: fetch %s", code)
	}

	records, err := ParseData(data)
	if err != nil {
		return models.CountryRecord{}, err
	}
	if len(records) == 0 {
		return models.CountryRecord{}, eris.Wrapf(errs.ErrNotFound, "country: code %s", code)
	}
	return records[0], nil
}

// FetchByCodes resolves several codes in one request. Callers skip the call
// for an empty list; an empty list here returns nothing without a request.
// Unknown codes yield an empty result rather than an error.
func (s *Service) FetchByCodes(ctx context.Context, codes []string) ([]models.CountryRecord, error) {
	cleaned := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, url.QueryEscape(c))
		}
	}
	if len(cleaned) == 0 {
		return []models.CountryRecord{}, nil
	}

	u := fmt.Sprintf("%s/alpha?codes=%s", s.BaseURL, strings.Join(cleaned, ","))
	return s.fetchList(ctx, u, "fetch codes")
}

// SearchByName returns countries whose name matches on the provider side.
func (s *Service) SearchByName(ctx context.Context, name string) ([]models.CountryRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []models.CountryRecord{}, nil
	}
	u := fmt.Sprintf("%s/name/%s", s.BaseURL, url.PathEscape(name))
	return s.fetchList(ctx, u, "search name")
}

// FetchByRegion returns the countries of one region.
func (s *Service) FetchByRegion(ctx context.Context, region string) ([]models.CountryRecord, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return []models.CountryRecord{}, nil
	}
	u := fmt.Sprintf("%s/region/%s", s.BaseURL, url.PathEscape(region))
	return s.fetchList(ctx, u, "fetch region")
}

func (s *Service) fetchList(ctx context.Context, u, op string) ([]models.CountryRecord, error) {
	data, err := s.Client.Do(ctx, u, nil)
	if err != nil {
		if errs.StatusCode(err) == http.StatusNotFound {
			return []models.CountryRecord{}, nil
		}
		return nil, eris.Wrapf(err, "country: %s", op)
	}
	return ParseData(data)
}

// ParseData decodes a provider body. The provider answers with an array for
// most endpoints and with a bare object for some single-code lookups.
func ParseData(data []byte) ([]models.CountryRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, eris.New("country: empty response body")
	}

	var resp RestCountriesAPIResponse
	if trimmed[0] == '{' {
		var one RestCountriesCountry
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, eris.Wrap(err, "country: parse object")
		}
		resp = RestCountriesAPIResponse{one}
	} else if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, eris.Wrap(err, "country: parse list")
	}

	return Normalize(resp), nil
}

// IsNotFound reports whether err means the code has no match.
func IsNotFound(err error) bool {
	return errors.Is(err, errs.ErrNotFound)
}
