package providers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/i474232898/aerospotter/internal/weather"
)

// Options configures providers built by name.
type Options struct {
	NOAABaseURL            string
	AviationWeatherBaseURL string
	MaxRetries             int
}

// Build constructs providers in the order named.
func Build(client *http.Client, names []string, opts Options) ([]weather.Provider, error) {
	var provs []weather.Provider
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "noaa":
			provs = append(provs, NewNOAAProvider(client, opts.NOAABaseURL, opts.MaxRetries))
		case "aviationweather":
			provs = append(provs, NewAviationWeatherProvider(client, opts.AviationWeatherBaseURL, opts.MaxRetries))
		case "":
		default:
			return nil, fmt.Errorf("unknown weather provider %q", name)
		}
	}
	return provs, nil
}
