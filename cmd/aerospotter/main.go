package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/aerospotter/internal/airfield"
	httpapi "github.com/i474232898/aerospotter/internal/api/http"
	"github.com/i474232898/aerospotter/internal/common"
	"github.com/i474232898/aerospotter/internal/config"
	"github.com/i474232898/aerospotter/internal/scheduler"
	"github.com/i474232898/aerospotter/internal/store"
	"github.com/i474232898/aerospotter/internal/weather"
	"github.com/i474232898/aerospotter/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logOut := common.SetupLog(cfg.LogFile)

	// Static airport data, read once.
	reg, err := loadRegistry(cfg.AirportsFile)
	if err != nil {
		log.Fatalf("failed to load airports: %v", err)
	}
	for _, code := range cfg.Airports {
		if _, err := reg.Airport(code); err != nil {
			log.Fatalf("invalid AIRPORTS: %v", err)
		}
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provs, err := providers.Build(httpClient, cfg.Providers, providers.Options{
		NOAABaseURL:            cfg.NOAABaseURL,
		AviationWeatherBaseURL: cfg.AviationWeatherURL,
		MaxRetries:             cfg.FetchMaxRetries,
	})
	if err != nil {
		log.Fatalf("failed to configure providers: %v", err)
	}

	memStore := store.NewMemoryStore(cfg.StoreMaxAge)
	service := weather.NewService(airfield.NewEngine(reg), memStore, provs, cfg.HTTPTimeout)

	// Scheduler that periodically refreshes the cache.
	sched := scheduler.New(cfg.Airports, cfg.FetchInterval, service.FetchBudget(), service, memStore)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "aerospotter",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          service.FetchBudget() + 5*time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New(logger.Config{Output: logOut}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "aerospotter",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

func loadRegistry(path string) (*airfield.Registry, error) {
	if path == "" {
		return airfield.DefaultRegistry()
	}
	log.Printf("INFO: loading airports from %s", path)
	return airfield.LoadRegistryFile(path)
}
