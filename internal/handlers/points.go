package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sokoni/internal/services/points"
	"sokoni/internal/utils"
	"sokoni/internal/validation"
)

type PointsHandler struct {
	pointsService points.Service
}

func NewPointsHandler(pointsService points.Service) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

func (h *PointsHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balance, err := h.pointsService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to get points balance")
	}

	return utils.Success(c, fiber.Map{
		"balance": balance,
	})
}

func (h *PointsHandler) GetHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	history, err := h.pointsService.GetHistory(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "Failed to get points history")
	}

	return utils.Success(c, fiber.Map{
		"transactions": history,
	})
}

func (h *PointsHandler) Transfer(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		RecipientID uint   `json:"recipient_id"`
		Amount      int64  `json:"amount"`
		Note        string `json:"note"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ID("recipient_id", input.RecipientID)
	v.Positive("amount", input.Amount)
	if !v.Valid() {
		return utils.BadRequest(c, v.Message())
	}

	result, err := h.pointsService.TransferPoints(c.Context(), claims.UserID, input.RecipientID, input.Amount, input.Note)
	if err != nil {
		switch {
		case errors.Is(err, points.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient points balance")
		case errors.Is(err, points.ErrSameAccount):
			return utils.BadRequest(c, "Cannot transfer points to yourself")
		case errors.Is(err, points.ErrInvalidAmount):
			return utils.BadRequest(c, "Amount must be greater than zero")
		default:
			return utils.InternalError(c, "Failed to transfer points")
		}
	}

	return utils.Success(c, fiber.Map{
		"message":  "Transfer successful",
		"transfer": result,
	})
}

func (h *PointsHandler) RedeemForPromotion(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		ListingID     uint   `json:"listing_id"`
		PromotionType string `json:"promotion_type"`
		Days          int    `json:"days"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.ID("listing_id", input.ListingID)
	v.Required("promotion_type", input.PromotionType)
	v.Range("days", input.Days, 1, 90)
	if !v.Valid() {
		return utils.BadRequest(c, v.Message())
	}

	promotion, err := h.pointsService.RedeemForPromotion(c.Context(), claims.UserID, input.ListingID, input.PromotionType, input.Days)
	if err != nil {
		switch {
		case errors.Is(err, points.ErrInsufficientBalance):
			return utils.BadRequest(c, "Insufficient points balance")
		case errors.Is(err, points.ErrInvalidPromotionType):
			return utils.BadRequest(c, "Unknown promotion type")
		case errors.Is(err, points.ErrInvalidDuration):
			return utils.BadRequest(c, "Invalid promotion duration")
		default:
			return utils.InternalError(c, "Failed to redeem points")
		}
	}

	return utils.Success(c, fiber.Map{
		"message":   "Promotion activated",
		"promotion": promotion,
	})
}
