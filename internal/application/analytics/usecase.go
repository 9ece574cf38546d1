// Package analytics agrega os números do painel por papel do ator.
package analytics

import (
	"context"

	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

// UseCase monta as métricas do dashboard. A consulta agrega na base; aqui só
// se deriva a taxa de inadimplência.
type UseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(analyticsRepo repository.AnalyticsRepository) *UseCase {
	return &UseCase{analyticsRepo: analyticsRepo}
}

// GetDashboardMetrics devolve os agregados visíveis ao ator.
// Taxa de inadimplência = vencidas / (vencidas + pagas); zero quando não há
// parcela resolvida, para o painel não dividir por zero.
func (uc *UseCase) GetDashboardMetrics(ctx context.Context, actor dto.Actor) (*dto.DashboardMetricsDTO, error) {
	m, err := uc.analyticsRepo.GetDashboardMetrics(ctx, actor.Role, actor.ID)
	if err != nil {
		return nil, err
	}

	var defaultRate float64
	if resolved := m.PaidPayments + m.OverduePayments; resolved > 0 {
		defaultRate = float64(m.OverduePayments) / float64(resolved)
	}

	return &dto.DashboardMetricsDTO{
		Approvals:         m.Approvals,
		TotalApplications: m.TotalApplications,
		Clients:           m.Clients,
		DefaultRate:       defaultRate,
		AverageScore:      m.AverageScore,
	}, nil
}
