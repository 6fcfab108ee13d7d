package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sokoni/internal/models"
	"sokoni/internal/services/payout"
	"sokoni/internal/utils"
)

type PayoutHandler struct {
	payoutService payout.Service
}

func NewPayoutHandler(payoutService payout.Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

func (h *PayoutHandler) GetEligibility(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	eligible, err := h.payoutService.IsEligible(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to check payout eligibility")
	}

	return utils.Success(c, fiber.Map{
		"eligible": eligible,
	})
}

func (h *PayoutHandler) RequestPayout(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		BankDetails models.JSON `json:"bank_details"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	p, err := h.payoutService.CreatePayoutRequest(c.Context(), claims.UserID, input.BankDetails)
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrMissingDetails):
			return utils.BadRequest(c, "Bank details are required")
		case errors.Is(err, payout.ErrNotEligible):
			return utils.BadRequest(c, "Balance is below the payout threshold")
		default:
			return utils.InternalError(c, "Failed to create payout request")
		}
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"payout": p,
	})
}

func (h *PayoutHandler) ListMyPayouts(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	payouts, err := h.payoutService.ListByUser(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to list payouts")
	}

	return utils.Success(c, fiber.Map{
		"payouts": payouts,
	})
}

func (h *PayoutHandler) GetPayout(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid payout id")
	}

	p, err := h.payoutService.GetPayout(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, payout.ErrPayoutNotFound) {
			return utils.NotFound(c, "Payout not found")
		}
		return utils.InternalError(c, "Failed to get payout")
	}

	// Users only ever see their own payouts; admins go through the admin
	// surface instead.
	if p.UserID != claims.UserID && !claims.IsAdmin() {
		return utils.NotFound(c, "Payout not found")
	}

	return utils.Success(c, fiber.Map{
		"payout": p,
	})
}
