package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sokoni/internal/services/catalog"
	"sokoni/internal/utils"
)

type CatalogHandler struct {
	catalogService catalog.Service
}

func NewCatalogHandler(catalogService catalog.Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.catalogService.ListPackages(c.Context(), true)
	if err != nil {
		return utils.InternalError(c, "Failed to list point packages")
	}

	return utils.Success(c, fiber.Map{
		"packages": packages,
	})
}

func (h *CatalogHandler) GetPackage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.BadRequest(c, "Invalid package id")
	}

	pkg, err := h.catalogService.GetPackage(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, catalog.ErrPackageNotFound) {
			return utils.NotFound(c, "Package not found")
		}
		return utils.InternalError(c, "Failed to get package")
	}

	return utils.Success(c, fiber.Map{
		"package": pkg,
	})
}

func (h *CatalogHandler) Purchase(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input catalog.PurchaseRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	result, err := h.catalogService.Purchase(c.Context(), claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrPackageNotFound):
			return utils.NotFound(c, "Package not found")
		case errors.Is(err, catalog.ErrPackageInactive):
			return utils.BadRequest(c, "Package is not available")
		case errors.Is(err, catalog.ErrUnsupportedMethod):
			return utils.BadRequest(c, "Unsupported payment method")
		case errors.Is(err, catalog.ErrPaymentDeclined):
			return utils.Respond(c, fiber.StatusPaymentRequired, fiber.Map{"error": "Payment was declined"})
		default:
			return utils.InternalError(c, "Failed to complete purchase")
		}
	}

	return utils.Success(c, fiber.Map{
		"purchase": result,
	})
}
