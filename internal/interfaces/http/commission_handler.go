package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagpro/fianca-api/internal/application/commissions"
	"github.com/pagpro/fianca-api/internal/application/dto"
)

// CommissionHandler trata comissões, taxas e regras de repasse.
type CommissionHandler struct {
	uc *commissions.UseCase
}

// NewCommissionHandler constrói o handler.
func NewCommissionHandler(uc *commissions.UseCase) *CommissionHandler {
	return &CommissionHandler{uc: uc}
}

// List lista as comissões visíveis ao ator (ADMIN e DIRECTOR veem todas).
func (h *CommissionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListCommissions(c.Context(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary devolve o resumo das comissões do ator autenticado.
func (h *CommissionHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus progride o status de uma comissão (só ADMIN).
func (h *CommissionHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é obrigatório"})
	}
	var in dto.UpdateCommissionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateCommissionStatus(c.Context(), actor(c), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPayoutRules lista as regras de override por papel.
func (h *CommissionHandler) ListPayoutRules(c *fiber.Ctx) error {
	out, err := h.uc.ListPayoutRules(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetPayoutRule ajusta o percentual de override de um papel (só ADMIN).
func (h *CommissionHandler) SetPayoutRule(c *fiber.Ctx) error {
	var in dto.UpdatePayoutRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.SetPayoutRule(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListRates lista as taxas de comissão por (papel, tipo).
func (h *CommissionHandler) ListRates(c *fiber.Ctx) error {
	out, err := h.uc.ListCommissionRates(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateRate cria uma taxa de comissão (só ADMIN).
func (h *CommissionHandler) CreateRate(c *fiber.Ctx) error {
	var in dto.CreateCommissionRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.CreateCommissionRate(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
