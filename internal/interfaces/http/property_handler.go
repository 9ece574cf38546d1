package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/application/properties"
)

// PropertyHandler trata o cadastro e a consulta de imóveis (protegido).
type PropertyHandler struct {
	uc *properties.UseCase
}

// NewPropertyHandler constrói o handler.
func NewPropertyHandler(uc *properties.UseCase) *PropertyHandler {
	return &PropertyHandler{uc: uc}
}

// Create cadastra um imóvel da imobiliária autenticada.
func (h *PropertyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePropertyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista os imóveis visíveis ao ator.
func (h *PropertyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForActor(c.Context(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devolve um imóvel pelo id.
func (h *PropertyHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
