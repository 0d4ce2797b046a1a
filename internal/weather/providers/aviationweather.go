package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/aerospotter/internal/weather"
)

// DefaultAviationWeatherURL is the aviationweather.gov METAR data API.
const DefaultAviationWeatherURL = "https://aviationweather.gov/api/data/metar"

// AviationWeatherProvider implements the weather.Provider interface for the
// aviationweather.gov JSON API, using its raw observation text.
type AviationWeatherProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewAviationWeatherProvider(client *http.Client, baseURL string, retries int) *AviationWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultAviationWeatherURL
	}
	return &AviationWeatherProvider{
		name:    "aviationweather",
		baseURL: baseURL,
		httpCfg: NewHTTPClientConfig(client, retries),
		circuit: newCircuitBreaker("aviationweather"),
	}
}

func (p *AviationWeatherProvider) Name() string {
	return p.name
}

func (p *AviationWeatherProvider) Fetch(ctx context.Context, airport string) (weather.Report, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("ids", airport)
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Report{}, err
	}
	body, err := readBody(resp)
	if err != nil {
		return weather.Report{}, err
	}

	var payload []struct {
		IcaoID  string `json:"icaoId"`
		ObsTime int64  `json:"obsTime"`
		RawOb   string `json:"rawOb"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Report{}, err
	}

	for _, m := range payload {
		if !strings.EqualFold(m.IcaoID, airport) || strings.TrimSpace(m.RawOb) == "" {
			continue
		}
		var observed time.Time
		if m.ObsTime > 0 {
			observed = time.Unix(m.ObsTime, 0).UTC()
		}
		return weather.Report{
			Airport:    airport,
			Provider:   p.name,
			Raw:        strings.TrimSpace(m.RawOb),
			ObservedAt: observed,
			FetchedAt:  time.Now().UTC(),
		}, nil
	}
	return weather.Report{}, errNoReport
}
