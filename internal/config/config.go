package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type AppConfig struct {
	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	// HTTPTimeout bounds one provider attempt; the next provider gets a fresh budget.
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	// FetchInterval controls how often we refresh each airport.
	FetchInterval time.Duration `envconfig:"FETCH_INTERVAL" default:"15m" validate:"gte=1m"`

	// StoreMaxAge is how long a cached snapshot is served before refetching.
	StoreMaxAge time.Duration `envconfig:"STORE_MAX_AGE" default:"30m" validate:"gte=0"`

	// Airports to refresh in the background.
	Airports []string `envconfig:"AIRPORTS" default:"RJTT,RJAA" validate:"dive,len=4"`

	// AirportsFile overrides the built-in airport data.
	AirportsFile string `envconfig:"AIRPORTS_FILE"`

	// Providers in the order they are tried.
	Providers          []string `envconfig:"WEATHER_PROVIDERS" default:"noaa,aviationweather" validate:"min=1,dive,oneof=noaa aviationweather"`
	NOAABaseURL        string   `envconfig:"NOAA_BASE_URL" validate:"omitempty,url"`
	AviationWeatherURL string   `envconfig:"AVWX_BASE_URL" validate:"omitempty,url"`
	FetchMaxRetries    int      `envconfig:"FETCH_MAX_RETRIES" default:"0" validate:"gte=0,lte=5"`

	LogFile string `envconfig:"LOG_FILE"`
}

var validate = validator.New()

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	for i, code := range cfg.Airports {
		cfg.Airports[i] = strings.ToUpper(strings.TrimSpace(code))
	}
	for i, name := range cfg.Providers {
		cfg.Providers[i] = strings.ToLower(strings.TrimSpace(name))
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
