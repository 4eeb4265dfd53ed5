package indicator

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AbdulWasayUl/country-explorer/internal/api"
	"github.com/AbdulWasayUl/country-explorer/internal/logger"
	"github.com/AbdulWasayUl/country-explorer/models"
	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"
)

// DefaultYears is the history length used when the caller passes zero.
const DefaultYears = 10

// economicWindow is how many years back the economic indicators look.
const economicWindow = 5

// Service reads the World Bank indicator API. None of its methods return
// errors: failures are reported inside the returned series so one missing
// indicator never blocks the rest of a view.
type Service struct {
	BaseURL string
	Client  api.Fetcher
	now     func() time.Time
}

func NewService(baseURL string, client api.Fetcher) *Service {
	return &Service{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
		now:     time.Now,
	}
}

// SetClock replaces time.Now, which decides the requested year window.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// FetchSeries returns the last yearsBack years of one indicator.
func (s *Service) FetchSeries(ctx context.Context, countryCode, indicatorID string, yearsBack int) models.IndicatorSeries {
	if yearsBack <= 0 {
		yearsBack = DefaultYears
	}
	end := s.now().Year()
	u := s.seriesURL(countryCode, indicatorID, end-yearsBack, end, yearsBack+5)

	name, obs, err := s.fetch(ctx, u)
	if err != nil {
		logger.Error("Error fetching %s for %s: %v", indicatorID, countryCode, err)
		return models.UnavailableSeries(countryCode, indicatorID, err.Error())
	}
	return BuildSeries(countryCode, indicatorID, name, obs, yearsBack)
}

// FetchGDP fetches GDP, GDP per capita and GDP growth concurrently.
func (s *Service) FetchGDP(ctx context.Context, countryCode string, years int) models.GDPData {
	if years <= 0 {
		years = DefaultYears
	}
	out := models.GDPData{CountryCode: countryCode, CountryName: "Unknown"}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.GDP = s.FetchSeries(gctx, countryCode, models.IndicatorGDP, years)
		return nil
	})
	g.Go(func() error {
		out.GDPPerCapita = s.FetchSeries(gctx, countryCode, models.IndicatorGDPPerCapita, years)
		return nil
	})
	g.Go(func() error {
		out.GDPGrowth = s.FetchSeries(gctx, countryCode, models.IndicatorGDPGrowth, years)
		return nil
	})
	_ = g.Wait()

	for _, series := range []models.IndicatorSeries{out.GDP, out.GDPPerCapita, out.GDPGrowth} {
		if series.Err == "" && series.CountryName != "" && series.CountryName != "Unknown" {
			out.CountryName = series.CountryName
			break
		}
	}
	out.LastUpdated = s.now()
	return out
}

// FetchEconomicIndicators returns the latest value of each economic
// indicator. A failure is recorded under its own key only.
func (s *Service) FetchEconomicIndicators(ctx context.Context, countryCode string) map[string]models.IndicatorValue {
	end := s.now().Year()
	results := make(map[string]models.IndicatorValue, len(models.EconomicIndicatorIDs))
	var mu sync.Mutex

	var g errgroup.Group
	for key, id := range models.EconomicIndicatorIDs {
		key, id := key, id
		g.Go(func() error {
			v := s.latest(ctx, s.seriesURL(countryCode, id, end-economicWindow, end, 10))
			if v.Err != "" {
				logger.Error("Error fetching %s (%s) for %s: %s", key, id, countryCode, v.Err)
			}
			mu.Lock()
			results[key] = v
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (s *Service) latest(ctx context.Context, u string) models.IndicatorValue {
	_, obs, err := s.fetch(ctx, u)
	if err != nil {
		return models.IndicatorValue{Err: err.Error()}
	}
	for _, o := range sortedDesc(obs) {
		if o.Value != nil {
			v := *o.Value
			year, _ := strconv.Atoi(o.Date)
			return models.IndicatorValue{Value: &v, Year: year}
		}
	}
	return models.IndicatorValue{}
}

func (s *Service) seriesURL(countryCode, indicatorID string, start, end, perPage int) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("date", fmt.Sprintf("%d:%d", start, end))
	q.Set("per_page", strconv.Itoa(perPage))
	return fmt.Sprintf("%s/country/%s/indicator/%s?%s",
		s.BaseURL, url.PathEscape(countryCode), url.PathEscape(indicatorID), q.Encode())
}

func (s *Service) fetch(ctx context.Context, u string) (string, []WorldBankObservation, error) {
	data, err := s.Client.Do(ctx, u, nil)
	if err != nil {
		return "", nil, eris.Wrap(err, "indicator: fetch")
	}
	return ParseData(data)
}

// ParseData decodes the [metadata, data] envelope. A missing or null data
// page is an empty result; a metadata message is an error.
func ParseData(data []byte) (string, []WorldBankObservation, error) {
	var envelope []json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", nil, eris.Wrap(err, "indicator: parse envelope")
	}
	if len(envelope) == 0 {
		return "", nil, eris.New("indicator: empty envelope")
	}

	var meta WorldBankMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return "", nil, eris.Wrap(err, "indicator: parse metadata")
	}
	if len(meta.Message) > 0 {
		return "", nil, eris.Errorf("indicator: provider rejected request: %s", meta.Message[0].Value)
	}
	if len(envelope) < 2 {
		return "", []WorldBankObservation{}, nil
	}

	var obs []WorldBankObservation
	if err := json.Unmarshal(envelope[1], &obs); err != nil {
		return "", nil, eris.Wrap(err, "indicator: parse data")
	}
	name := ""
	for _, o := range obs {
		if o.Country.Value != "" {
			name = o.Country.Value
			break
		}
	}
	return name, obs, nil
}

// BuildSeries turns raw observations into a series. The current value is the
// most recent non-null observation; history keeps the newest yearsBack
// non-null observations, oldest first. A feed with no values is unavailable.
func BuildSeries(countryCode, indicatorID, countryName string, obs []WorldBankObservation, yearsBack int) models.IndicatorSeries {
	if countryName == "" {
		countryName = "Unknown"
	}
	series := models.IndicatorSeries{
		CountryCode: countryCode,
		CountryName: countryName,
		IndicatorID: indicatorID,
		History:     []models.Observation{},
	}

	desc := sortedDesc(obs)
	for _, o := range desc {
		if o.Value == nil {
			continue
		}
		year, err := strconv.Atoi(o.Date)
		if err != nil {
			continue
		}
		if series.Current == nil {
			v := *o.Value
			series.Current = &v
			series.CurrentYear = year
		}
		if len(series.History) < yearsBack {
			series.History = append(series.History, models.Observation{Year: year, Value: *o.Value})
		}
	}

	if series.Current == nil {
		series.Err = "no data available"
		return series
	}
	for i, j := 0, len(series.History)-1; i < j; i, j = i+1, j-1 {
		series.History[i], series.History[j] = series.History[j], series.History[i]
	}
	return series
}

// sortedDesc orders observations newest first. The provider already does,
// but the order is not part of its contract.
func sortedDesc(obs []WorldBankObservation) []WorldBankObservation {
	out := make([]WorldBankObservation, len(obs))
	copy(out, obs)
	sort.SliceStable(out, func(i, j int) bool {
		yi, _ := strconv.Atoi(out[i].Date)
		yj, _ := strconv.Atoi(out[j].Date)
		return yi > yj
	})
	return out
}
