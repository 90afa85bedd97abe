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

	httpapi "github.com/jalrakshak/groundwater-data-aggregation/internal/api/http"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/config"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/groundwater/providers"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/scheduler"
	"github.com/jalrakshak/groundwater-data-aggregation/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls. Per-provider deadlines
	// come from the aggregator's context; this is only a hard upper bound.
	httpClient := &http.Client{
		Timeout: cfg.ProviderTimeout + 5*time.Second,
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	// Provider chain in configured priority order.
	provs := buildProviders(cfg, httpClient)
	if len(provs) == 0 {
		log.Printf("WARN: no providers configured; every query will use synthetic data")
	}

	aggregator := groundwater.NewAggregator(groundwater.Options{
		Providers: provs,
		Timeout:   cfg.ProviderTimeout,
		Resolver:  groundwater.NewResolver(cfg.GeocoderAPIKey),
	})

	service := groundwater.NewService(aggregator, memStore)

	// Scheduler that periodically refreshes tracked locations.
	sched := scheduler.New(cfg.Locations, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "groundwater-data-aggregation",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
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
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "groundwater-data-aggregation",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
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

// buildProviders instantiates the chain named by cfg.ProviderOrder. Unknown
// names are skipped with a warning rather than failing startup.
func buildProviders(cfg *config.AppConfig, client *http.Client) []groundwater.Provider {
	var provs []groundwater.Provider
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "india-wris":
			provs = append(provs, providers.NewIndiaWRISProvider(client))
		case "data-gov-in":
			provs = append(provs, providers.NewDataGovInProvider(client, cfg.DataGovAPIKey))
		case "cgwb":
			provs = append(provs, providers.NewCGWBProvider(client))
		case "igrac":
			provs = append(provs, providers.NewIGRACProvider(client, cfg.CORSProxyURL))
		case "openweather-estimate":
			provs = append(provs, providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey))
		default:
			log.Printf("WARN: unknown provider %q in PROVIDER_ORDER; skipping", name)
		}
	}
	return provs
}
