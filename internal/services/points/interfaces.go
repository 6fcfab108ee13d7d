package points

import (
	"context"

	"sokoni/internal/models"
)

// Service is the only mutation path for points balances. Every mutating
// operation runs as one atomic unit against the ledger; concurrent requests
// against the same account serialize on the balance row lock.
type Service interface {
	// Reads
	GetBalance(ctx context.Context, userID uint) (int64, error)
	GetHistory(ctx context.Context, userID uint, limit, offset int) ([]models.PointTransaction, error)

	// Immediate operations: the ledger entry is created completed with the
	// balance already applied.
	AddPoints(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error)
	DeductPoints(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error)
	TransferPoints(ctx context.Context, fromID, toID uint, amount int64, note string) (*TransferResult, error)
	RedeemForPromotion(ctx context.Context, userID, listingID uint, promotionType string, days int) (*models.Promotion, error)

	// Pending workflow: entries await an approval decision before any
	// balance effect.
	CreatePendingCredit(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error)
	CreatePendingDebit(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error)
	ApproveTransaction(ctx context.Context, id uint) error
	RejectTransaction(ctx context.Context, id uint, reason string) error

	// Bulk admin operations: each id is an independent atomic unit.
	BulkApprove(ctx context.Context, ids []uint) BulkResult
	BulkReject(ctx context.Context, ids []uint, reason string) BulkResult
	BulkDelete(ctx context.Context, ids []uint) BulkResult
}
