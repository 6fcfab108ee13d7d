// Seeds the admin account and the default point package catalog.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"sokoni/internal/config"
	"sokoni/internal/logger"
	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

func main() {
	config.LoadEnv()

	log := logger.New()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			_ = repositories.CacheService.Close()
		}
	}()

	seedAdmin(adminEmail, adminPassword, log)
	seedPackages(log)
}

func seedAdmin(email, password string, log zerolog.Logger) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Info().Msg("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     models.RoleAdmin,
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to create admin user")
	}

	log.Info().Str("email", email).Msg("admin account created")
}

func seedPackages(log zerolog.Logger) {
	var count int64
	if err := repositories.DB.Model(&models.PointPackage{}).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to count point packages")
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("point packages already seeded")
		return
	}

	packages := []models.PointPackage{
		{Name: "Starter", Points: 100, BonusPoints: 0, Price: decimal.RequireFromString("4.99"), DisplayOrder: 1},
		{Name: "Standard", Points: 500, BonusPoints: 50, Price: decimal.RequireFromString("19.99"), DisplayOrder: 2},
		{Name: "Pro", Points: 1200, BonusPoints: 200, Price: decimal.RequireFromString("39.99"), Featured: true, DisplayOrder: 3},
		{Name: "Business", Points: 3000, BonusPoints: 750, Price: decimal.RequireFromString("89.99"), DisplayOrder: 4},
	}
	for i := range packages {
		packages[i].Active = true
	}

	if err := repositories.DB.Create(&packages).Error; err != nil {
		log.Fatal().Err(err).Msg("failed to seed point packages")
	}

	log.Info().Int("count", len(packages)).Msg("point packages seeded")
}
