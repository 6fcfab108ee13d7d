package points

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni/internal/models"
)

var errFakeStorage = errors.New("storage blew up")

func newTestService(t *testing.T) (Service, *fakeLedger) {
	t.Helper()
	ledger := newFakeLedger()
	svc := NewService(ledger, zerolog.Nop(), nil)
	return svc, ledger
}

func TestAddPoints(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	txID, err := svc.AddPoints(ctx, 1, 100, "bonus", models.NoReference())
	require.NoError(t, err)

	balance, err := svc.GetBalance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)

	tx, err := ledger.GetTransactionByID(txID)
	require.NoError(t, err)
	assert.Equal(t, models.PointTxCompleted, tx.Status)
	assert.Equal(t, models.DirectionCredit, tx.Direction)
	require.NotNil(t, tx.BalanceAfter)
	assert.Equal(t, int64(100), *tx.BalanceAfter)
}

func TestAddPoints_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		amount  int64
		ref     models.Reference
		wantErr error
	}{
		{"zero amount", 0, models.NoReference(), ErrInvalidAmount},
		{"negative amount", -5, models.NoReference(), ErrInvalidAmount},
		{"reference without id", 10, models.Reference{Kind: models.RefPayment}, ErrInvalidReference},
		{"unknown reference kind", 10, models.Reference{Kind: "order", ID: 3}, ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddPoints(ctx, 1, tt.amount, "x", tt.ref)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeductPoints_Boundary(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddPoints(ctx, 1, 100, "seed", models.NoReference())
	require.NoError(t, err)

	t.Run("deduct above balance fails and writes nothing", func(t *testing.T) {
		before := ledger.countTransactions(1)
		_, err := svc.DeductPoints(ctx, 1, 150, "promo", models.NoReference())
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		balance, _ := svc.GetBalance(ctx, 1)
		assert.Equal(t, int64(100), balance)
		assert.Equal(t, before, ledger.countTransactions(1))
	})

	t.Run("deduct exact balance leaves zero", func(t *testing.T) {
		txID, err := svc.DeductPoints(ctx, 1, 100, "promo", models.NoReference())
		require.NoError(t, err)

		balance, _ := svc.GetBalance(ctx, 1)
		assert.Equal(t, int64(0), balance)

		tx, err := ledger.GetTransactionByID(txID)
		require.NoError(t, err)
		require.NotNil(t, tx.BalanceAfter)
		assert.Equal(t, int64(0), *tx.BalanceAfter)
	})

	t.Run("deduct from empty balance fails", func(t *testing.T) {
		_, err := svc.DeductPoints(ctx, 1, 1, "promo", models.NoReference())
		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})
}

func TestTransferPoints(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddPoints(ctx, 1, 100, "seed", models.NoReference())
	require.NoError(t, err)

	result, err := svc.TransferPoints(ctx, 1, 2, 50, "gift")
	require.NoError(t, err)
	assert.NotZero(t, result.DebitTransactionID)
	assert.NotZero(t, result.CreditTransactionID)

	fromBalance, _ := svc.GetBalance(ctx, 1)
	toBalance, _ := svc.GetBalance(ctx, 2)
	assert.Equal(t, int64(50), fromBalance)
	assert.Equal(t, int64(50), toBalance)

	// Combined total is unchanged
	assert.Equal(t, int64(100), fromBalance+toBalance)

	debit, err := ledger.GetTransactionByID(result.DebitTransactionID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRef(2), debit.Reference)

	credit, err := ledger.GetTransactionByID(result.CreditTransactionID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRef(1), credit.Reference)
}

func TestTransferPoints_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.TransferPoints(ctx, 1, 1, 10, "self")
	assert.ErrorIs(t, err, ErrSameAccount)

	_, err = svc.TransferPoints(ctx, 1, 2, 0, "zero")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.TransferPoints(ctx, 1, 2, 10, "broke")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestRedeemForPromotion(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddPoints(ctx, 1, 500, "seed", models.NoReference())
	require.NoError(t, err)

	promo, err := svc.RedeemForPromotion(ctx, 1, 42, models.PromotionFeatured, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(150), promo.PointsUsed) // 50/day * 3 days
	assert.Equal(t, uint(42), promo.ListingID)
	assert.Equal(t, promo.StartsAt.AddDate(0, 0, 3), promo.EndsAt)

	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(350), balance)
	assert.Len(t, ledger.promotions, 1)
}

func TestRedeemForPromotion_Errors(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	_, err := svc.RedeemForPromotion(ctx, 1, 42, "sparkly", 3)
	assert.ErrorIs(t, err, ErrInvalidPromotionType)

	_, err = svc.RedeemForPromotion(ctx, 1, 42, models.PromotionUrgent, 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = svc.AddPoints(ctx, 1, 10, "seed", models.NoReference())
	require.NoError(t, err)
	_, err = svc.RedeemForPromotion(ctx, 1, 42, models.PromotionTopListing, 1)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(10), balance)
	assert.Empty(t, ledger.promotions)
}

func TestApproveTransaction(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreatePendingCredit(ctx, 1, 500, "package purchase", models.PackageRef(7))
	require.NoError(t, err)

	// Pending rows have no balance effect
	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(0), balance)

	require.NoError(t, svc.ApproveTransaction(ctx, id))

	balance, _ = svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(500), balance)

	tx, err := ledger.GetTransactionByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.PointTxCompleted, tx.Status)
	require.NotNil(t, tx.BalanceAfter)
	assert.Equal(t, int64(500), *tx.BalanceAfter)
}

func TestApproveTransaction_Idempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreatePendingCredit(ctx, 1, 500, "package purchase", models.PackageRef(7))
	require.NoError(t, err)

	require.NoError(t, svc.ApproveTransaction(ctx, id))
	err = svc.ApproveTransaction(ctx, id)
	assert.ErrorIs(t, err, ErrTransactionNotPending)

	// Delta applied exactly once
	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(500), balance)
}

func TestApproveTransaction_DebitEnforcesBalance(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreatePendingDebit(ctx, 1, 50, "withdrawal", models.NoReference())
	require.NoError(t, err)

	err = svc.ApproveTransaction(ctx, id)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// Still pending, still no balance effect
	tx, err := ledger.GetTransactionByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.PointTxPending, tx.Status)

	_, err = svc.AddPoints(ctx, 1, 60, "seed", models.NoReference())
	require.NoError(t, err)
	require.NoError(t, svc.ApproveTransaction(ctx, id))

	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(10), balance)
}

func TestRejectTransaction(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreatePendingCredit(ctx, 1, 500, "package purchase", models.PackageRef(7))
	require.NoError(t, err)

	require.NoError(t, svc.RejectTransaction(ctx, id, "settlement declined"))

	tx, err := ledger.GetTransactionByID(id)
	require.NoError(t, err)
	assert.Equal(t, models.PointTxFailed, tx.Status)
	assert.Equal(t, "settlement declined", tx.StatusReason)
	assert.Nil(t, tx.BalanceAfter)

	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(0), balance)

	// Terminal: a second decision is refused
	err = svc.ApproveTransaction(ctx, id)
	assert.ErrorIs(t, err, ErrTransactionNotPending)
}

func TestBulkOperations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ids []uint
	for i := 0; i < 3; i++ {
		id, err := svc.CreatePendingCredit(ctx, 1, 100, "purchase", models.PackageRef(1))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	// Poison the middle of the batch: already rejected
	require.NoError(t, svc.RejectTransaction(ctx, ids[1], "declined"))

	result := svc.BulkApprove(ctx, append(ids, 999))
	assert.Equal(t, 2, result.Succeeded)
	require.Len(t, result.Failed, 2)

	// One failure never blocks the others
	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, int64(200), balance)
}

func TestBulkDelete(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	completed, err := svc.AddPoints(ctx, 1, 100, "seed", models.NoReference())
	require.NoError(t, err)
	pending, err := svc.CreatePendingCredit(ctx, 1, 50, "purchase", models.PackageRef(1))
	require.NoError(t, err)

	result := svc.BulkDelete(ctx, []uint{completed, pending})
	assert.Equal(t, 1, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, completed, result.Failed[0].ID)

	// The completed row survives, so conservation still holds
	balance, _ := svc.GetBalance(ctx, 1)
	assert.Equal(t, balance, ledger.completedSum(1))
}

func TestBalanceConservation(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddPoints(ctx, 1, 300, "seed", models.NoReference())
	require.NoError(t, err)
	_, err = svc.DeductPoints(ctx, 1, 120, "spend", models.NoReference())
	require.NoError(t, err)
	_, err = svc.TransferPoints(ctx, 1, 2, 30, "gift")
	require.NoError(t, err)
	pendingID, err := svc.CreatePendingCredit(ctx, 1, 999, "purchase", models.PackageRef(1))
	require.NoError(t, err)
	require.NoError(t, svc.RejectTransaction(ctx, pendingID, "declined"))

	for _, userID := range []uint{1, 2} {
		balance, err := svc.GetBalance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, ledger.completedSum(userID), balance,
			"balance cache must equal completed credits minus completed debits")
	}
}

func TestStorageFailureSurfacesGenerically(t *testing.T) {
	svc, ledger := newTestService(t)
	ctx := context.Background()

	ledger.failCreate = true
	_, err := svc.AddPoints(ctx, 1, 100, "bonus", models.NoReference())
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.NotContains(t, err.Error(), "blew up")
}
