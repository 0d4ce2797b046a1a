package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/aerospotter/internal/weather"
)

// DefaultNOAABaseURL serves one text file per station.
const DefaultNOAABaseURL = "https://tgftp.nws.noaa.gov/data/observations/metar/stations"

// noaaTimeLayout is the header line of a station file, e.g. "2024/01/01 12:00".
const noaaTimeLayout = "2006/01/02 15:04"

// NOAAProvider implements the weather.Provider interface for the NOAA
// station text files: a UTC timestamp line followed by the report.
type NOAAProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNOAAProvider(client *http.Client, baseURL string, retries int) *NOAAProvider {
	if baseURL == "" {
		baseURL = DefaultNOAABaseURL
	}
	return &NOAAProvider{
		name:    "noaa",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: NewHTTPClientConfig(client, retries),
		circuit: newCircuitBreaker("noaa"),
	}
}

func (p *NOAAProvider) Name() string {
	return p.name
}

func (p *NOAAProvider) Fetch(ctx context.Context, airport string) (weather.Report, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s.TXT", p.baseURL, airport)
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

	observed, raw, err := splitStationFile(string(body))
	if err != nil {
		return weather.Report{}, err
	}

	return weather.Report{
		Airport:    airport,
		Provider:   p.name,
		Raw:        raw,
		ObservedAt: observed,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// splitStationFile returns the header time (zero if unparseable) and the
// first non-empty line after it.
func splitStationFile(body string) (time.Time, string, error) {
	lines := strings.Split(strings.ReplaceAll(body, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return time.Time{}, "", errNoReport
	}

	observed, err := time.Parse(noaaTimeLayout, strings.TrimSpace(lines[0]))
	if err != nil {
		observed = time.Time{}
	}

	for _, line := range lines[1:] {
		if line = strings.TrimSpace(line); line != "" {
			return observed, line, nil
		}
	}
	return time.Time{}, "", errNoReport
}
