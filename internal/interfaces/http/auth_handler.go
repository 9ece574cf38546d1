package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagpro/fianca-api/internal/application/auth"
	"github.com/pagpro/fianca-api/internal/application/dto"
)

// AuthHandler trata cadastro, login e perfil.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register cria um usuário na rede de parceiros.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login valida as credenciais e devolve o JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me devolve o perfil do usuário autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
