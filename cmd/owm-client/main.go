package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	httpapi "github.com/i474232898/owm-client/internal/api/http"
	"github.com/i474232898/owm-client/internal/config"
	"github.com/i474232898/owm-client/internal/scheduler"
	"github.com/i474232898/owm-client/internal/store"
	"github.com/i474232898/owm-client/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	directory, err := cfg.Directory()
	if err != nil {
		log.Fatalf("failed to load city directory: %v", err)
	}
	log.Printf("INFO: city directory has %d entries", directory.Len())

	// Shared HTTP client for outbound provider calls.
	var doer weather.Doer = &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	if cfg.CircuitBreaker {
		doer = weather.NewBreakerDoer(doer, weather.DefaultBreakerSettings("openweathermap"))
	}

	client := weather.NewClient(cfg.OpenWeatherAPIKey,
		weather.WithBaseURL(cfg.BaseURL),
		weather.WithDirectory(directory),
		weather.WithDoer(doer),
	)

	// In-memory outcome history with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	service := weather.NewService(memStore, client)

	// Poller that periodically fetches and records current conditions.
	sched := scheduler.New(cfg.PollLocations, cfg.PollInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "owm-client",
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
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "owm-client",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, directory)

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
