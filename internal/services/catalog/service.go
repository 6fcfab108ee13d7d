package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
	"sokoni/internal/repositories/cache"
	"sokoni/internal/services/points"
)

// Service is the boundary around the read-only point package catalog and the
// purchase flow that turns a confirmed payment into a points credit.
type Service interface {
	ListPackages(ctx context.Context, activeOnly bool) ([]models.PointPackage, error)
	GetPackage(ctx context.Context, id uint) (*models.PointPackage, error)

	Purchase(ctx context.Context, userID uint, req PurchaseRequest) (*PurchaseResult, error)
	ConfirmSettlement(ctx context.Context, transactionID uint) error
	FailSettlement(ctx context.Context, transactionID uint, reason string) error
}

type service struct {
	repo    repositories.CatalogRepository
	cache   *cache.CacheService
	gateway PaymentGateway
	points  points.Service
	logger  zerolog.Logger
}

// NewService creates a new catalog service. Cache is optional.
func NewService(
	repo repositories.CatalogRepository,
	cacheService *cache.CacheService,
	gateway PaymentGateway,
	pointsService points.Service,
	logger zerolog.Logger,
) Service {
	if repo == nil {
		panic("catalog repository is required")
	}
	if gateway == nil {
		panic("payment gateway is required")
	}
	if pointsService == nil {
		panic("points service is required")
	}
	return &service{
		repo:    repo,
		cache:   cacheService,
		gateway: gateway,
		points:  pointsService,
		logger:  logger.With().Str("service", "catalog").Logger(),
	}
}

func (s *service) ListPackages(ctx context.Context, activeOnly bool) ([]models.PointPackage, error) {
	// The catalog is read-only from the core's perspective, so serving it
	// from cache is safe.
	if s.cache != nil {
		if packages, ok := s.cache.GetPackages(ctx, activeOnly); ok {
			return packages, nil
		}
	}

	packages, err := s.repo.List(activeOnly)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list packages")
		return nil, fmt.Errorf("%w: list packages", ErrOperationFailed)
	}

	if s.cache != nil {
		if err := s.cache.CachePackages(ctx, activeOnly, packages); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache packages")
		}
	}
	return packages, nil
}

func (s *service) GetPackage(ctx context.Context, id uint) (*models.PointPackage, error) {
	pkg, err := s.repo.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		s.logger.Error().Err(err).Uint("package_id", id).Msg("failed to get package")
		return nil, fmt.Errorf("%w: get package", ErrOperationFailed)
	}
	return pkg, nil
}

// Purchase charges the buyer through the gateway and credits the package's
// total points. Card charges settle immediately; bank transfers create a
// pending credit that lands once settlement is confirmed.
func (s *service) Purchase(ctx context.Context, userID uint, req PurchaseRequest) (*PurchaseResult, error) {
	pkg, err := s.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.Active {
		return nil, ErrPackageInactive
	}

	reason := fmt.Sprintf("purchase of %q package", pkg.Name)

	switch req.PaymentMethod {
	case MethodCard:
		chargeResult, err := s.gateway.Charge(ctx, ChargeRequest{
			Amount:      pkg.Price,
			Currency:    "usd",
			CardToken:   req.CardToken,
			Description: reason,
		})
		if err != nil {
			s.logger.Warn().Err(err).Uint("user_id", userID).Uint("package_id", pkg.ID).Msg("gateway declined charge")
			return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}

		txID, err := s.points.AddPoints(ctx, userID, pkg.TotalPoints(), reason, models.PackageRef(pkg.ID))
		if err != nil {
			// The charge went through but the credit did not; this needs an
			// operator, so log everything we know.
			s.logger.Error().
				Err(err).
				Uint("user_id", userID).
				Uint("package_id", pkg.ID).
				Str("gateway_reference", chargeResult.Reference).
				Msg("charge succeeded but points credit failed")
			return nil, fmt.Errorf("%w: credit points", ErrOperationFailed)
		}
		return &PurchaseResult{
			TransactionID:    txID,
			Points:           pkg.TotalPoints(),
			GatewayReference: chargeResult.Reference,
		}, nil

	case MethodBankTransfer:
		txID, err := s.points.CreatePendingCredit(ctx, userID, pkg.TotalPoints(), reason, models.PackageRef(pkg.ID))
		if err != nil {
			return nil, fmt.Errorf("%w: create pending credit", ErrOperationFailed)
		}
		return &PurchaseResult{
			TransactionID: txID,
			Points:        pkg.TotalPoints(),
			Pending:       true,
		}, nil

	default:
		return nil, ErrUnsupportedMethod
	}
}

// ConfirmSettlement lands a pending purchase credit once the transfer
// settled.
func (s *service) ConfirmSettlement(ctx context.Context, transactionID uint) error {
	return s.points.ApproveTransaction(ctx, transactionID)
}

// FailSettlement voids a pending purchase credit that never settled.
func (s *service) FailSettlement(ctx context.Context, transactionID uint, reason string) error {
	return s.points.RejectTransaction(ctx, transactionID, reason)
}
