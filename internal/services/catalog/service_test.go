package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
	"sokoni/internal/services/points"
)

type fakeCatalogRepo struct {
	packages map[uint]models.PointPackage
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{packages: make(map[uint]models.PointPackage)}
}

func (f *fakeCatalogRepo) List(activeOnly bool) ([]models.PointPackage, error) {
	var out []models.PointPackage
	for _, p := range f.packages {
		if activeOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) Get(id uint) (*models.PointPackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, repositories.ErrPackageNotFound
	}
	out := p
	return &out, nil
}

func (f *fakeCatalogRepo) Create(p *models.PointPackage) error {
	p.ID = uint(len(f.packages) + 1)
	f.packages[p.ID] = *p
	return nil
}

type fakeGateway struct {
	charges []ChargeRequest
	fail    bool
}

func (f *fakeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if f.fail {
		return nil, errors.New("card declined")
	}
	f.charges = append(f.charges, req)
	return &ChargeResult{Reference: "ch_test_123"}, nil
}

// fakePoints records the credits the purchase flow asks for.
type fakePoints struct {
	points.Service
	nextID   uint
	added    []int64
	pending  []int64
	approved []uint
	rejected []uint
}

func (f *fakePoints) AddPoints(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error) {
	f.nextID++
	f.added = append(f.added, amount)
	return f.nextID, nil
}

func (f *fakePoints) CreatePendingCredit(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error) {
	f.nextID++
	f.pending = append(f.pending, amount)
	return f.nextID, nil
}

func (f *fakePoints) ApproveTransaction(ctx context.Context, id uint) error {
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakePoints) RejectTransaction(ctx context.Context, id uint, reason string) error {
	f.rejected = append(f.rejected, id)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeCatalogRepo, *fakeGateway, *fakePoints) {
	t.Helper()
	repo := newFakeCatalogRepo()
	gateway := &fakeGateway{}
	pointsSvc := &fakePoints{}
	svc := NewService(repo, nil, gateway, pointsSvc, zerolog.Nop())
	return svc, repo, gateway, pointsSvc
}

func seedPackage(t *testing.T, repo *fakeCatalogRepo, active bool) *models.PointPackage {
	t.Helper()
	pkg := &models.PointPackage{
		Name:        "Starter",
		Points:      500,
		BonusPoints: 50,
		Price:       decimal.RequireFromString("9.99"),
		Active:      active,
	}
	require.NoError(t, repo.Create(pkg))
	return pkg
}

func TestPurchaseWithCard(t *testing.T) {
	svc, repo, gateway, pointsSvc := newTestService(t)
	pkg := seedPackage(t, repo, true)

	result, err := svc.Purchase(context.Background(), 1, PurchaseRequest{
		PackageID:     pkg.ID,
		PaymentMethod: MethodCard,
		CardToken:     "tok_visa",
	})
	require.NoError(t, err)
	assert.False(t, result.Pending)
	assert.Equal(t, int64(550), result.Points) // points + bonus
	assert.Equal(t, "ch_test_123", result.GatewayReference)

	// Gateway charged the package price
	require.Len(t, gateway.charges, 1)
	assert.Equal(t, "9.99", gateway.charges[0].Amount.StringFixed(2))

	// Credit landed immediately
	require.Len(t, pointsSvc.added, 1)
	assert.Equal(t, int64(550), pointsSvc.added[0])
	assert.Empty(t, pointsSvc.pending)
}

func TestPurchaseWithBankTransfer(t *testing.T) {
	svc, repo, gateway, pointsSvc := newTestService(t)
	pkg := seedPackage(t, repo, true)
	ctx := context.Background()

	result, err := svc.Purchase(ctx, 1, PurchaseRequest{
		PackageID:     pkg.ID,
		PaymentMethod: MethodBankTransfer,
	})
	require.NoError(t, err)
	assert.True(t, result.Pending)

	// No gateway charge, only a pending credit
	assert.Empty(t, gateway.charges)
	require.Len(t, pointsSvc.pending, 1)
	assert.Equal(t, int64(550), pointsSvc.pending[0])

	// Settlement confirmation approves the pending credit
	require.NoError(t, svc.ConfirmSettlement(ctx, result.TransactionID))
	assert.Equal(t, []uint{result.TransactionID}, pointsSvc.approved)
}

func TestPurchaseDeclined(t *testing.T) {
	svc, repo, gateway, pointsSvc := newTestService(t)
	pkg := seedPackage(t, repo, true)
	gateway.fail = true

	_, err := svc.Purchase(context.Background(), 1, PurchaseRequest{
		PackageID:     pkg.ID,
		PaymentMethod: MethodCard,
		CardToken:     "tok_bad",
	})
	assert.ErrorIs(t, err, ErrPaymentDeclined)

	// No points move on a declined charge
	assert.Empty(t, pointsSvc.added)
	assert.Empty(t, pointsSvc.pending)
}

func TestPurchaseValidation(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	inactive := seedPackage(t, repo, false)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, 1, PurchaseRequest{PackageID: inactive.ID, PaymentMethod: MethodCard})
	assert.ErrorIs(t, err, ErrPackageInactive)

	_, err = svc.Purchase(ctx, 1, PurchaseRequest{PackageID: 404, PaymentMethod: MethodCard})
	assert.ErrorIs(t, err, ErrPackageNotFound)

	active := seedPackage(t, repo, true)
	_, err = svc.Purchase(ctx, 1, PurchaseRequest{PackageID: active.ID, PaymentMethod: "cheque"})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestFailSettlement(t *testing.T) {
	svc, repo, _, pointsSvc := newTestService(t)
	pkg := seedPackage(t, repo, true)
	ctx := context.Background()

	result, err := svc.Purchase(ctx, 1, PurchaseRequest{
		PackageID:     pkg.ID,
		PaymentMethod: MethodBankTransfer,
	})
	require.NoError(t, err)

	require.NoError(t, svc.FailSettlement(ctx, result.TransactionID, "transfer never arrived"))
	assert.Equal(t, []uint{result.TransactionID}, pointsSvc.rejected)
}

func TestListPackages(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	seedPackage(t, repo, true)
	seedPackage(t, repo, false)

	all, err := svc.ListPackages(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.ListPackages(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}
