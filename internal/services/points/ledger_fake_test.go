package points

import (
	"sync"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

// fakeLedger is an in-memory LedgerRepository for tests. Reads hand out
// copies; only SaveBalance / CreateTransaction / the status flips write
// through, which mirrors how the real repository behaves inside a rolled
// back transaction.
type fakeLedger struct {
	mu         sync.Mutex
	nextTxID   uint
	nextPromID uint
	txs        map[uint]models.PointTransaction
	balances   map[uint]models.PointBalance
	promotions []models.Promotion
	failCreate bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		nextTxID:   1,
		nextPromID: 1,
		txs:        make(map[uint]models.PointTransaction),
		balances:   make(map[uint]models.PointBalance),
	}
}

func (f *fakeLedger) CreateTransaction(tx *models.PointTransaction) error {
	if f.failCreate {
		return errFakeStorage
	}
	tx.ID = f.nextTxID
	f.nextTxID++
	f.txs[tx.ID] = *tx
	return nil
}

func (f *fakeLedger) GetTransactionByID(id uint) (*models.PointTransaction, error) {
	tx, ok := f.txs[id]
	if !ok {
		return nil, repositories.ErrTransactionNotFound
	}
	out := tx
	return &out, nil
}

func (f *fakeLedger) GetTransactionForUpdate(id uint) (*models.PointTransaction, error) {
	return f.GetTransactionByID(id)
}

func (f *fakeLedger) DeleteTransaction(id uint) error {
	if _, ok := f.txs[id]; !ok {
		return repositories.ErrTransactionNotFound
	}
	delete(f.txs, id)
	return nil
}

func (f *fakeLedger) ListTransactions(userID uint, limit, offset int) ([]models.PointTransaction, error) {
	var out []models.PointTransaction
	for _, tx := range f.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (f *fakeLedger) CompletePending(id uint, balanceAfter int64) error {
	tx, ok := f.txs[id]
	if !ok || tx.Status != models.PointTxPending {
		return repositories.ErrStaleStatus
	}
	tx.Status = models.PointTxCompleted
	tx.BalanceAfter = &balanceAfter
	f.txs[id] = tx
	return nil
}

func (f *fakeLedger) FailPending(id uint, reason string) error {
	tx, ok := f.txs[id]
	if !ok || tx.Status != models.PointTxPending {
		return repositories.ErrStaleStatus
	}
	tx.Status = models.PointTxFailed
	tx.StatusReason = reason
	f.txs[id] = tx
	return nil
}

func (f *fakeLedger) GetBalance(userID uint) (int64, error) {
	return f.balances[userID].Balance, nil
}

func (f *fakeLedger) GetBalanceForUpdate(userID uint) (*models.PointBalance, error) {
	bal, ok := f.balances[userID]
	if !ok {
		bal = models.PointBalance{ID: userID, UserID: userID}
		f.balances[userID] = bal
	}
	out := bal
	return &out, nil
}

func (f *fakeLedger) SaveBalance(balance *models.PointBalance) error {
	f.balances[balance.UserID] = *balance
	return nil
}

func (f *fakeLedger) CreatePromotion(p *models.Promotion) error {
	p.ID = f.nextPromID
	f.nextPromID++
	f.promotions = append(f.promotions, *p)
	return nil
}

func (f *fakeLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f)
}

// completedSum recomputes the balance from the ledger, the way the
// conservation invariant defines it.
func (f *fakeLedger) completedSum(userID uint) int64 {
	var sum int64
	for _, tx := range f.txs {
		if tx.UserID != userID || tx.Status != models.PointTxCompleted {
			continue
		}
		sum += tx.SignedAmount()
	}
	return sum
}

func (f *fakeLedger) countTransactions(userID uint) int {
	n := 0
	for _, tx := range f.txs {
		if tx.UserID == userID {
			n++
		}
	}
	return n
}
