package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pagpro/fianca-api/internal/application/analytics"
)

// DashboardHandler devolve os agregados do painel.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics devolve as métricas do painel no recorte do ator autenticado.
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboardMetrics(c.Context(), actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
