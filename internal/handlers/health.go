package handlers

import (
	"github.com/gofiber/fiber/v2"

	"sokoni/internal/repositories"
)

func HealthCheck(c *fiber.Ctx) error {
	dbStatus := "connected"
	if sqlDB, err := repositories.DB.DB(); err != nil || sqlDB.Ping() != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "connected"
	if repositories.CacheService == nil || repositories.CacheService.HealthCheck(c.Context()) != nil {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "ok"
	if dbStatus != "connected" {
		status = fiber.StatusServiceUnavailable
		overall = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"services": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
	})
}
