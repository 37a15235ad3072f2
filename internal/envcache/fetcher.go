package envcache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/urtzih/Lorapp/internal/domain"
)

// LunarFetcher fetches one day of astronomy data from an upstream provider.
type LunarFetcher interface {
	FetchLunar(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error)
}

// WeatherFetcher fetches one day of forecast data from an upstream provider.
type WeatherFetcher interface {
	FetchWeather(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error)
}

// astronomyClient talks to a WeatherAPI-compatible astronomy endpoint.
type astronomyClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAstronomyFetcher creates a fetcher against a WeatherAPI-compatible
// astronomy endpoint. An empty API key makes every fetch fail fast so the
// caller drops straight to the local calculation.
func NewAstronomyFetcher(baseURL, apiKey string) LunarFetcher {
	return &astronomyClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// astronomyResponse mirrors the subset of the provider payload we keep.
type astronomyResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Astronomy struct {
		Astro struct {
			Sunrise          string    `json:"sunrise"`
			Sunset           string    `json:"sunset"`
			Moonrise         string    `json:"moonrise"`
			Moonset          string    `json:"moonset"`
			MoonPhase        string    `json:"moon_phase"`
			MoonIllumination flexFloat `json:"moon_illumination"`
		} `json:"astro"`
	} `json:"astronomy"`
}

func (c *astronomyClient) FetchLunar(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.LunarRecord, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: astronomy API key not configured", domain.ErrFetchFailed)
	}

	q := loc.Name
	if q == "" {
		q = fmt.Sprintf("%g,%g", loc.Latitude, loc.Longitude)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", q)
	params.Set("dt", date.Format("2006-01-02"))

	var body astronomyResponse
	if err := c.getJSON(ctx, c.baseURL+"/astronomy.json?"+params.Encode(), &body); err != nil {
		return nil, err
	}

	astro := body.Astronomy.Astro
	if astro.MoonPhase == "" {
		return nil, fmt.Errorf("%w: astronomy payload missing moon phase", domain.ErrFetchFailed)
	}

	return &domain.LunarRecord{
		Date:         date,
		Location:     loc.Name,
		Latitude:     loc.Latitude,
		Longitude:    loc.Longitude,
		Phase:        astro.MoonPhase,
		Illumination: float64(astro.MoonIllumination),
		Moonrise:     astro.Moonrise,
		Moonset:      astro.Moonset,
		Sunrise:      astro.Sunrise,
		Sunset:       astro.Sunset,
	}, nil
}

func (c *astronomyClient) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: provider returned status %d", domain.ErrFetchFailed, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed provider payload: %v", domain.ErrFetchFailed, err)
	}
	return nil
}

// openMeteoClient talks to an Open-Meteo-compatible daily forecast endpoint.
type openMeteoClient struct {
	baseURL string
	client  *http.Client
}

// NewForecastFetcher creates a fetcher against an Open-Meteo-compatible
// forecast endpoint. The provider needs no API key.
func NewForecastFetcher(baseURL string) WeatherFetcher {
	return &openMeteoClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// forecastDays is how far ahead the provider is asked to forecast; the
// target day must fall inside this window to resolve.
const forecastDays = 10

// dailyVariables is the daily= query value sent to the forecast endpoint.
const dailyVariables = "temperature_2m_max,temperature_2m_min,temperature_2m_mean," +
	"precipitation_sum,precipitation_probability_max,windspeed_10m_max,uv_index_max,sunrise,sunset"

type forecastResponse struct {
	Daily struct {
		Time                []string  `json:"time"`
		TempMax             []float64 `json:"temperature_2m_max"`
		TempMin             []float64 `json:"temperature_2m_min"`
		TempMean            []float64 `json:"temperature_2m_mean"`
		PrecipitationSum    []float64 `json:"precipitation_sum"`
		PrecipitationChance []int     `json:"precipitation_probability_max"`
		WindSpeedMax        []float64 `json:"windspeed_10m_max"`
		UVIndexMax          []float64 `json:"uv_index_max"`
	} `json:"daily"`
}

func (c *openMeteoClient) FetchWeather(ctx context.Context, date time.Time, loc domain.GeoPoint) (*domain.WeatherRecord, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', -1, 64))
	params.Set("daily", dailyVariables)
	params.Set("timezone", "auto")
	params.Set("past_days", "0")
	params.Set("forecast_days", strconv.Itoa(forecastDays))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: provider returned status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed provider payload: %v", domain.ErrFetchFailed, err)
	}

	target := date.Format("2006-01-02")
	idx := -1
	for i, d := range body.Daily.Time {
		if d == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: date %s not in forecast window", domain.ErrFetchFailed, target)
	}

	chance := at(body.Daily.PrecipitationChance, idx)
	rec := &domain.WeatherRecord{
		Date:            date,
		Location:        loc.Name,
		Latitude:        loc.Latitude,
		Longitude:       loc.Longitude,
		TempMaxC:        atF(body.Daily.TempMax, idx),
		TempMinC:        atF(body.Daily.TempMin, idx),
		TempAvgC:        atF(body.Daily.TempMean, idx),
		Condition:       conditionForRainChance(chance),
		Humidity:        defaultHumidity,
		PrecipitationMM: atF(body.Daily.PrecipitationSum, idx),
		ChanceOfRain:    chance,
		WindKPH:         atF(body.Daily.WindSpeedMax, idx),
		UVIndex:         atF(body.Daily.UVIndexMax, idx),
	}
	return rec, nil
}

// defaultHumidity stands in for a field the free forecast tier does not carry.
const defaultHumidity = 70

// conditionForRainChance maps precipitation probability to a condition label,
// since the forecast provider carries no condition codes.
func conditionForRainChance(chance int) string {
	switch {
	case chance >= 70:
		return "Rainy"
	case chance >= 50:
		return "Cloudy"
	case chance >= 30:
		return "Partly Cloudy"
	default:
		return "Clear"
	}
}

func at(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func atF(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// flexFloat decodes a JSON value that some providers send as a number and
// others as a quoted string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}
