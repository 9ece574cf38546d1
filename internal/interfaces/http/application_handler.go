package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagpro/fianca-api/internal/application/applications"
	"github.com/pagpro/fianca-api/internal/application/dto"
)

// ApplicationHandler trata o ciclo de vida das solicitações de seguro fiança.
type ApplicationHandler struct {
	uc *applications.UseCase
}

// NewApplicationHandler constrói o handler.
func NewApplicationHandler(uc *applications.UseCase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Create abre uma solicitação e roda a avaliação de crédito na hora. A
// resposta já traz o status decidido e, se aprovado, a apólice com o
// cronograma.
func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.PropertyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "property_id é obrigatório"})
	}
	out, err := h.uc.CreateApplication(c.Context(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista as solicitações visíveis ao ator.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForActor(c.Context(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devolve a visão completa de uma solicitação.
func (h *ApplicationHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.GetApplication(c.Context(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus muda o status manualmente (ADMIN ou imobiliária dona).
func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), actor(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Reanalyze reexecuta a avaliação de crédito da solicitação.
func (h *ApplicationHandler) Reanalyze(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.Reanalyze(c.Context(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdatePaymentStatus progride o status de uma parcela do cronograma.
func (h *ApplicationHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	in.PaymentID = c.Params("id")
	if in.PaymentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	out, err := h.uc.UpdatePaymentStatus(c.Context(), actor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
