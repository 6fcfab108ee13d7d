package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sokoni/internal/models"
	"sokoni/internal/services/wallet"
	"sokoni/internal/utils"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			// No earnings yet reads as an empty wallet.
			return utils.Success(c, fiber.Map{
				"balance": "0.00",
			})
		}
		return utils.InternalError(c, "Failed to get wallet")
	}

	return utils.Success(c, fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.walletService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to get wallet balance")
	}

	return utils.Success(c, fiber.Map{
		"balance": balance.StringFixed(2),
	})
}

func (h *WalletHandler) GetTransactionHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	history, err := h.walletService.GetTransactionHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to get wallet history")
	}

	return utils.Success(c, fiber.Map{
		"transactions": history,
	})
}
