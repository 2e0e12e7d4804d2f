package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/dkhoward/weather-marine-mcp/internal/api/http"
	mcpapi "github.com/dkhoward/weather-marine-mcp/internal/api/mcp"
	"github.com/dkhoward/weather-marine-mcp/internal/config"
	"github.com/dkhoward/weather-marine-mcp/internal/geocode"
	"github.com/dkhoward/weather-marine-mcp/internal/marine"
	"github.com/dkhoward/weather-marine-mcp/internal/nws"
	"github.com/dkhoward/weather-marine-mcp/internal/service"
	"github.com/dkhoward/weather-marine-mcp/internal/upstream"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

const version = "1.0.0"

func main() {
	// Log to stderr: in stdio mode stdout carries the MCP protocol stream.
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound provider calls; each provider gets
	// its own circuit breaker on top of it.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	resolver := geocode.NewResolver(
		upstream.New("geocoding", httpClient, cfg.UserAgent),
		cfg.GeocodingBaseURL,
		log,
	)
	weather := nws.NewOrchestrator(
		upstream.New("nws", httpClient, cfg.UserAgent),
		cfg.WeatherBaseURL,
		log,
	)
	marineAgg := marine.NewAggregator(
		upstream.New("marine", httpClient, cfg.UserAgent),
		cfg.MarineBaseURL,
		log,
	)

	svc := service.New(resolver, weather, marineAgg, log)

	switch cfg.ServeMode {
	case config.ServeModeHTTP:
		runHTTP(cfg, svc, log)
	default:
		runStdio(svc, log)
	}
}

// runStdio serves the MCP tool surface over stdin/stdout until the client
// closes the stream.
func runStdio(svc *service.Service, log *slog.Logger) {
	s := mcpapi.NewServer(svc, version)

	log.Info("serving MCP tools on stdio", "version", version)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}

// runHTTP serves the REST surface with graceful shutdown.
func runHTTP(cfg *config.AppConfig, svc *service.Service, log *slog.Logger) {
	app := fiber.New(fiber.Config{
		AppName:               "weather-marine-mcp",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
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
			"service": "weather-marine-mcp",
		})
	})

	httpapi.RegisterRoutes(app, svc)

	go func() {
		log.Info("serving HTTP API", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}
