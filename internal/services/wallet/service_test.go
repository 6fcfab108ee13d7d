package wallet

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

type fakeWalletRepo struct {
	wallets map[uint]models.Wallet
	txs     []models.WalletTransaction
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{wallets: make(map[uint]models.Wallet)}
}

func (f *fakeWalletRepo) Create(w *models.Wallet) error {
	f.wallets[w.UserID] = *w
	return nil
}

func (f *fakeWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	out := w
	return &out, nil
}

func (f *fakeWalletRepo) GetForUpdate(userID uint) (*models.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		w = models.Wallet{ID: userID, UserID: userID, Balance: decimal.Zero}
		f.wallets[userID] = w
	}
	out := w
	return &out, nil
}

func (f *fakeWalletRepo) Update(w *models.Wallet) error {
	f.wallets[w.UserID] = *w
	return nil
}

func (f *fakeWalletRepo) CreateTransaction(tx *models.WalletTransaction) error {
	tx.ID = uint(len(f.txs) + 1)
	f.txs = append(f.txs, *tx)
	return nil
}

func (f *fakeWalletRepo) ListTransactions(userID uint, limit, offset int) ([]models.WalletTransaction, error) {
	var out []models.WalletTransaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(f)
}

func TestGetBalance(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewService(repo, zerolog.Nop())
	ctx := context.Background()

	t.Run("missing wallet reads as zero", func(t *testing.T) {
		balance, err := svc.GetBalance(ctx, 1)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("existing wallet", func(t *testing.T) {
		require.NoError(t, repo.Create(&models.Wallet{
			UserID:  2,
			Balance: decimal.RequireFromString("123.45"),
		}))
		balance, err := svc.GetBalance(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "123.45", balance.StringFixed(2))
	})
}

func TestGetWallet_NotFound(t *testing.T) {
	svc := NewService(newFakeWalletRepo(), zerolog.Nop())

	_, err := svc.GetWallet(context.Background(), 99)
	assert.ErrorIs(t, err, ErrWalletNotFound)
}

func TestApplyCredit(t *testing.T) {
	repo := newFakeWalletRepo()

	paymentID := uint(7)
	err := ApplyCredit(repo, 1, decimal.RequireFromString("899.10"),
		models.WalletTxCommissionCredit, "net earnings", &paymentID, nil)
	require.NoError(t, err)

	w, err := repo.GetByUserID(1)
	require.NoError(t, err)
	assert.Equal(t, "899.10", w.Balance.StringFixed(2))

	require.Len(t, repo.txs, 1)
	assert.Equal(t, models.WalletTxCommissionCredit, repo.txs[0].Type)
	require.NotNil(t, repo.txs[0].PaymentID)
	assert.Equal(t, paymentID, *repo.txs[0].PaymentID)
}

func TestApplyCredit_RejectsNonPositive(t *testing.T) {
	repo := newFakeWalletRepo()

	err := ApplyCredit(repo, 1, decimal.Zero, models.WalletTxPayoutRefund, "refund", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	err = ApplyCredit(repo, 1, decimal.RequireFromString("-1"), models.WalletTxPayoutRefund, "refund", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Empty(t, repo.txs)
}

func TestGetTransactionHistory(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewService(repo, zerolog.Nop())

	require.NoError(t, repo.CreateTransaction(&models.WalletTransaction{
		UserID: 1, Amount: decimal.NewFromInt(10), Type: models.WalletTxCommissionCredit,
	}))
	require.NoError(t, repo.CreateTransaction(&models.WalletTransaction{
		UserID: 2, Amount: decimal.NewFromInt(20), Type: models.WalletTxCommissionCredit,
	}))

	history, err := svc.GetTransactionHistory(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, uint(1), history[0].UserID)
}
