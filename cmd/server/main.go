// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"sokoni/internal/config"
	"sokoni/internal/logger"
	"sokoni/internal/repositories"
	"sokoni/internal/routes"
)

func main() {
	config.LoadEnv()

	log := logger.New()

	if err := repositories.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Warn().Err(err).Msg("failed to close database connection")
				}
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close redis connection")
			}
		}
	}()

	sqlDB, err := repositories.DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database instance")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}
	log.Info().Msg("connected to database")

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Rate-limit the credential endpoints
	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, log)

	addr := ":" + config.GetEnv("PORT", "3000")
	log.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
