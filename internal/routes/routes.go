// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sokoni/internal/config"
	"sokoni/internal/handlers"
	"sokoni/internal/middleware"
	"sokoni/internal/repositories"
	"sokoni/internal/services/auth"
	"sokoni/internal/services/catalog"
	"sokoni/internal/services/commission"
	"sokoni/internal/services/payout"
	"sokoni/internal/services/points"
	"sokoni/internal/services/wallet"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, logger zerolog.Logger) {
	// Initialize repositories
	ledgerRepo := repositories.NewLedgerRepository(repositories.DB)
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	payoutRepo := repositories.NewPayoutRepository(repositories.DB)
	paymentRepo := repositories.NewPaymentRepository(repositories.DB)
	catalogRepo := repositories.NewCatalogRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB)

	// Initialize auth service and handler
	jwtSecret := config.GetEnv("JWT_SECRET", "sokoni")
	authService := auth.NewService(userRepo, jwtSecret)
	authHandler := handlers.NewAuthHandler(authService)

	// Initialize services
	pointsService := points.NewService(ledgerRepo, logger, nil)
	walletService := wallet.NewService(walletRepo, logger)

	payoutThreshold, err := decimal.NewFromString(config.GetEnv("PAYOUT_MIN_THRESHOLD", "1000"))
	if err != nil {
		payoutThreshold = decimal.Zero
	}
	payoutService := payout.NewService(payoutRepo, walletRepo, payoutThreshold, logger)
	commissionService := commission.NewService(paymentRepo, logger)

	gateway := catalog.NewStripeGateway(config.GetEnv("STRIPE_SECRET_KEY", ""))
	catalogService := catalog.NewService(catalogRepo, repositories.CacheService, gateway, pointsService, logger)

	// Initialize handlers
	pointsHandler := handlers.NewPointsHandler(pointsService)
	walletHandler := handlers.NewWalletHandler(walletService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	adminHandler := handlers.NewAdminHandler(
		pointsService,
		payoutService,
		commissionService,
		catalogService,
		catalogRepo,
		repositories.CacheService,
	)

	// Public routes
	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/packages", catalogHandler.ListPackages)
	api.Get("/packages/:id", catalogHandler.GetPackage)

	app.Get("/health", handlers.HealthCheck)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSecret)
	protected := api.Use(authMiddleware.Handler)

	setupPointsRoutes(protected, pointsHandler, catalogHandler)
	setupWalletRoutes(protected, walletHandler, payoutHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler)
}

func setupPointsRoutes(router fiber.Router, h *handlers.PointsHandler, catalogHandler *handlers.CatalogHandler) {
	pts := router.Group("/points")
	pts.Get("/balance", h.GetBalance)
	pts.Get("/history", h.GetHistory)
	pts.Post("/transfer", h.Transfer)
	pts.Post("/promote", h.RedeemForPromotion)
	pts.Post("/purchase", catalogHandler.Purchase)
}

func setupWalletRoutes(router fiber.Router, walletHandler *handlers.WalletHandler, payoutHandler *handlers.PayoutHandler) {
	w := router.Group("/wallet")
	w.Get("/", walletHandler.GetWallet)
	w.Get("/balance", walletHandler.GetBalance)
	w.Get("/transactions", walletHandler.GetTransactionHistory)

	payouts := router.Group("/payouts")
	payouts.Get("/eligibility", payoutHandler.GetEligibility)
	payouts.Post("/", payoutHandler.RequestPayout)
	payouts.Get("/", payoutHandler.ListMyPayouts)
	payouts.Get("/:id", payoutHandler.GetPayout)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, h *handlers.AdminHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	// Manual ledger adjustments and pending decisions
	admin.Post("/points/credit", h.CreditPoints)
	admin.Post("/points/debit", h.DebitPoints)
	admin.Post("/transactions/:id/approve", h.ApproveTransaction)
	admin.Post("/transactions/:id/reject", h.RejectTransaction)
	admin.Post("/transactions/bulk-approve", h.BulkApprove)
	admin.Post("/transactions/bulk-reject", h.BulkReject)
	admin.Post("/transactions/bulk-delete", h.BulkDelete)

	// Purchase settlement for bank transfers
	admin.Post("/settlements/:id/confirm", h.ConfirmSettlement)
	admin.Post("/settlements/:id/fail", h.FailSettlement)

	// Payout workflow
	admin.Get("/payouts", h.ListPayouts)
	admin.Post("/payouts/:id/approve", h.ApprovePayout)
	admin.Post("/payouts/:id/paid", h.MarkPayoutPaid)
	admin.Post("/payouts/:id/reject", h.RejectPayout)

	// Commission
	admin.Post("/payments/:id/commission", h.ApplyCommission)

	// Catalog management
	admin.Post("/packages", h.CreatePackage)
}
