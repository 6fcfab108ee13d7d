package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
	"sokoni/internal/repositories/cache"
	"sokoni/internal/services/catalog"
	"sokoni/internal/services/commission"
	"sokoni/internal/services/payout"
	"sokoni/internal/services/points"
	"sokoni/internal/utils"
	"sokoni/internal/validation"
)

// AdminHandler exposes the operator surface: manual ledger adjustments,
// pending decisions, payout transitions and catalog management.
type AdminHandler struct {
	pointsService     points.Service
	payoutService     payout.Service
	commissionService commission.Service
	catalogService    catalog.Service
	catalogRepo       repositories.CatalogRepository
	cache             *cache.CacheService
}

func NewAdminHandler(
	pointsService points.Service,
	payoutService payout.Service,
	commissionService commission.Service,
	catalogService catalog.Service,
	catalogRepo repositories.CatalogRepository,
	cacheService *cache.CacheService,
) *AdminHandler {
	return &AdminHandler{
		pointsService:     pointsService,
		payoutService:     payoutService,
		commissionService: commissionService,
		catalogService:    catalogService,
		catalogRepo:       catalogRepo,
		cache:             cacheService,
	}
}

type adjustPointsInput struct {
	UserID  uint   `json:"user_id"`
	Amount  int64  `json:"amount"`
	Reason  string `json:"reason"`
	Pending bool   `json:"pending"`
}

func (h *AdminHandler) parseAdjustment(c *fiber.Ctx) (*adjustPointsInput, error) {
	var input adjustPointsInput
	if err := c.BodyParser(&input); err != nil {
		return nil, utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ID("user_id", input.UserID)
	v.Positive("amount", input.Amount)
	v.Required("reason", input.Reason)
	if !v.Valid() {
		return nil, utils.BadRequest(c, v.Message())
	}
	return &input, nil
}

// CreditPoints adds points to a user's balance, either immediately or as a
// pending credit awaiting approval.
func (h *AdminHandler) CreditPoints(c *fiber.Ctx) error {
	input, errResp := h.parseAdjustment(c)
	if input == nil {
		return errResp
	}

	var (
		txID uint
		err  error
	)
	if input.Pending {
		txID, err = h.pointsService.CreatePendingCredit(c.Context(), input.UserID, input.Amount, input.Reason, models.NoReference())
	} else {
		txID, err = h.pointsService.AddPoints(c.Context(), input.UserID, input.Amount, input.Reason, models.NoReference())
	}
	if err != nil {
		return utils.InternalError(c, "Failed to credit points")
	}

	return utils.Success(c, fiber.Map{
		"transaction_id": txID,
		"pending":        input.Pending,
	})
}

// DebitPoints removes points from a user's balance, either immediately or as
// a pending debit awaiting approval.
func (h *AdminHandler) DebitPoints(c *fiber.Ctx) error {
	input, errResp := h.parseAdjustment(c)
	if input == nil {
		return errResp
	}

	var (
		txID uint
		err  error
	)
	if input.Pending {
		txID, err = h.pointsService.CreatePendingDebit(c.Context(), input.UserID, input.Amount, input.Reason, models.NoReference())
	} else {
		txID, err = h.pointsService.DeductPoints(c.Context(), input.UserID, input.Amount, input.Reason, models.NoReference())
	}
	if err != nil {
		if errors.Is(err, points.ErrInsufficientBalance) {
			return utils.BadRequest(c, "Insufficient points balance")
		}
		return utils.InternalError(c, "Failed to debit points")
	}

	return utils.Success(c, fiber.Map{
		"transaction_id": txID,
		"pending":        input.Pending,
	})
}

func (h *AdminHandler) ApproveTransaction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid transaction id")
	}

	if err := h.pointsService.ApproveTransaction(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, points.ErrTransactionNotPending):
			return utils.Conflict(c, "Transaction is not pending")
		case errors.Is(err, points.ErrInsufficientBalance):
			return utils.BadRequest(c, "Approval would overdraw the balance")
		default:
			return utils.InternalError(c, "Failed to approve transaction")
		}
	}

	return utils.Success(c, fiber.Map{"message": "Transaction approved"})
}

func (h *AdminHandler) RejectTransaction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid transaction id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.pointsService.RejectTransaction(c.Context(), uint(id), input.Reason); err != nil {
		if errors.Is(err, points.ErrTransactionNotPending) {
			return utils.Conflict(c, "Transaction is not pending")
		}
		return utils.InternalError(c, "Failed to reject transaction")
	}

	return utils.Success(c, fiber.Map{"message": "Transaction rejected"})
}

type bulkInput struct {
	IDs    []uint `json:"ids"`
	Reason string `json:"reason,omitempty"`
}

func (h *AdminHandler) BulkApprove(c *fiber.Ctx) error {
	var input bulkInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if len(input.IDs) == 0 {
		return utils.BadRequest(c, "No transaction ids provided")
	}

	result := h.pointsService.BulkApprove(c.Context(), input.IDs)
	return utils.Success(c, result)
}

func (h *AdminHandler) BulkReject(c *fiber.Ctx) error {
	var input bulkInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if len(input.IDs) == 0 {
		return utils.BadRequest(c, "No transaction ids provided")
	}

	result := h.pointsService.BulkReject(c.Context(), input.IDs, input.Reason)
	return utils.Success(c, result)
}

func (h *AdminHandler) BulkDelete(c *fiber.Ctx) error {
	var input bulkInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if len(input.IDs) == 0 {
		return utils.BadRequest(c, "No transaction ids provided")
	}

	result := h.pointsService.BulkDelete(c.Context(), input.IDs)
	return utils.Success(c, result)
}

// Payout administration

func (h *AdminHandler) ListPayouts(c *fiber.Ctx) error {
	status := c.Query("status", models.PayoutPending)
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	payouts, err := h.payoutService.ListByStatus(c.Context(), status, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list payouts")
	}

	return utils.Success(c, fiber.Map{
		"payouts": payouts,
	})
}

func (h *AdminHandler) ApprovePayout(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid payout id")
	}

	if err := h.payoutService.Approve(c.Context(), uint(id)); err != nil {
		return h.payoutError(c, err, "Failed to approve payout")
	}

	return utils.Success(c, fiber.Map{"message": "Payout approved"})
}

func (h *AdminHandler) MarkPayoutPaid(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid payout id")
	}

	var input struct {
		TransactionReference string `json:"transaction_reference"`
		PaymentMethod        string `json:"payment_method"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Required("transaction_reference", input.TransactionReference)
	v.Required("payment_method", input.PaymentMethod)
	if !v.Valid() {
		return utils.BadRequest(c, v.Message())
	}

	if err := h.payoutService.MarkPaid(c.Context(), uint(id), input.TransactionReference, input.PaymentMethod); err != nil {
		return h.payoutError(c, err, "Failed to mark payout as paid")
	}

	return utils.Success(c, fiber.Map{"message": "Payout marked as paid"})
}

func (h *AdminHandler) RejectPayout(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid payout id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.payoutService.Reject(c.Context(), uint(id), input.Reason); err != nil {
		return h.payoutError(c, err, "Failed to reject payout")
	}

	return utils.Success(c, fiber.Map{"message": "Payout rejected and wallet refunded"})
}

func (h *AdminHandler) payoutError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, payout.ErrPayoutNotFound):
		return utils.NotFound(c, "Payout not found")
	case errors.Is(err, payout.ErrInvalidState):
		return utils.Conflict(c, "Payout is not in a state that allows this transition")
	default:
		return utils.InternalError(c, fallback)
	}
}

// Commission administration

func (h *AdminHandler) ApplyCommission(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid payment id")
	}

	result, err := h.commissionService.ApplyToPayment(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, commission.ErrPaymentNotFound):
			return utils.NotFound(c, "Payment not found")
		case errors.Is(err, commission.ErrPaymentNotCompleted):
			return utils.Conflict(c, "Payment is not completed")
		default:
			return utils.InternalError(c, "Failed to apply commission")
		}
	}

	return utils.Success(c, result)
}

// Purchase settlement

func (h *AdminHandler) ConfirmSettlement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid transaction id")
	}

	if err := h.catalogService.ConfirmSettlement(c.Context(), uint(id)); err != nil {
		if errors.Is(err, points.ErrTransactionNotPending) {
			return utils.Conflict(c, "Transaction is not pending")
		}
		return utils.InternalError(c, "Failed to confirm settlement")
	}

	return utils.Success(c, fiber.Map{"message": "Settlement confirmed, points credited"})
}

func (h *AdminHandler) FailSettlement(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid transaction id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	if err := h.catalogService.FailSettlement(c.Context(), uint(id), input.Reason); err != nil {
		if errors.Is(err, points.ErrTransactionNotPending) {
			return utils.Conflict(c, "Transaction is not pending")
		}
		return utils.InternalError(c, "Failed to fail settlement")
	}

	return utils.Success(c, fiber.Map{"message": "Settlement failed, credit voided"})
}

// Catalog administration

func (h *AdminHandler) CreatePackage(c *fiber.Ctx) error {
	var input struct {
		Name         string `json:"name"`
		Points       int64  `json:"points"`
		BonusPoints  int64  `json:"bonus_points"`
		Price        string `json:"price"`
		Featured     bool   `json:"featured"`
		DisplayOrder int    `json:"display_order"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Required("name", input.Name)
	v.Positive("points", input.Points)
	v.Required("price", input.Price)
	if !v.Valid() {
		return utils.BadRequest(c, v.Message())
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.Sign() <= 0 {
		return utils.BadRequest(c, "Price must be a positive decimal amount")
	}

	pkg := &models.PointPackage{
		Name:         input.Name,
		Points:       input.Points,
		BonusPoints:  input.BonusPoints,
		Price:        price,
		Active:       true,
		Featured:     input.Featured,
		DisplayOrder: input.DisplayOrder,
	}
	if err := h.catalogRepo.Create(pkg); err != nil {
		return utils.InternalError(c, "Failed to create package")
	}

	if h.cache != nil {
		// Stale catalog entries expire on their own if this fails.
		_ = h.cache.InvalidatePackages(c.Context())
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"package": pkg,
	})
}
