// Command aerospotter-snapshot evaluates one airport and writes the result
// as a GeoJSON file for static map rendering.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/i474232898/aerospotter/internal/airfield"
	"github.com/i474232898/aerospotter/internal/common"
	"github.com/i474232898/aerospotter/internal/config"
	"github.com/i474232898/aerospotter/internal/export"
	"github.com/i474232898/aerospotter/internal/store"
	"github.com/i474232898/aerospotter/internal/weather"
	"github.com/i474232898/aerospotter/internal/weather/providers"
)

func main() {
	airport := flag.String("airport", "RJTT", "ICAO code of the airport to evaluate")
	out := flag.String("out", "", "output file; .gz compresses, empty writes to stdout")
	report := flag.String("report", "", "evaluate this METAR text instead of fetching one")
	at := flag.String("time", "", "observation time (RFC3339) for -report")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	common.SetupLog(cfg.LogFile)

	if err := run(cfg, *airport, *report, *at, *out); err != nil {
		log.Fatalf("ERROR: %v", err)
	}
}

func run(cfg *config.AppConfig, airport, report, at, out string) error {
	var (
		reg *airfield.Registry
		err error
	)
	if cfg.AirportsFile != "" {
		reg, err = airfield.LoadRegistryFile(cfg.AirportsFile)
	} else {
		reg, err = airfield.DefaultRegistry()
	}
	if err != nil {
		return err
	}

	provs, err := providers.Build(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.Providers, providers.Options{
		NOAABaseURL:            cfg.NOAABaseURL,
		AviationWeatherBaseURL: cfg.AviationWeatherURL,
		MaxRetries:             cfg.FetchMaxRetries,
	})
	if err != nil {
		return err
	}
	service := weather.NewService(airfield.NewEngine(reg), store.NewMemoryStore(0), provs, cfg.HTTPTimeout)

	var snap weather.Snapshot
	if report != "" {
		var t time.Time
		if at != "" {
			if t, err = time.Parse(time.RFC3339, at); err != nil {
				return fmt.Errorf("invalid -time: %w", err)
			}
		}
		snap, err = service.Assess(airport, report, t)
	} else {
		snap, err = service.Refresh(context.Background(), airport)
	}
	if err != nil {
		return err
	}

	data, err := export.GeoJSON(snap).MarshalJSON()
	if err != nil {
		return err
	}
	if err := write(out, data); err != nil {
		return err
	}
	log.Printf("INFO: %s active runways %v", snap.Airport(), snap.Assessment.Active)
	return nil
}

func write(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, path, data); err != nil {
		_ = f.Close()
		return err
	}
	// A failed close can mean the data never reached the disk.
	return f.Close()
}

func encode(f *os.File, path string, data []byte) error {
	if strings.HasSuffix(path, ".gz") {
		zw := gzip.NewWriter(f)
		if _, err := zw.Write(data); err != nil {
			return err
		}
		return zw.Close()
	}
	_, err := f.Write(data)
	return err
}
