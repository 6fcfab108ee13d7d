package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sokoni/internal/models"
	"sokoni/internal/services/auth"
	"sokoni/internal/utils"
	"sokoni/internal/validation"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.Email("email", input.Email)
	v.Password("password", input.Password)
	v.Required("name", input.Name)
	if !v.Valid() {
		return utils.BadRequest(c, v.Message())
	}

	user, err := h.authService.Register(input.Email, input.Password, input.Name, models.RoleUser)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return utils.Conflict(c, "User already exists")
		}
		return utils.InternalError(c, "Failed to register user")
	}

	return utils.Respond(c, fiber.StatusCreated, fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	token, user, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid email or password")
		}
		return utils.InternalError(c, "Failed to log in")
	}

	return utils.Success(c, fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
