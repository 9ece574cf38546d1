package postgres

import (
	"context"
	"fmt"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only de agregados para o dashboard.
// O recorte por papel entra como filtro da própria consulta; o caso de uso
// não pós-filtra nada.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constrói o adaptador de leitura do dashboard.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetDashboardMetrics agrega solicitações, aprovações, clientes distintos,
// parcelas pagas/vencidas e score médio no recorte do ator.
func (r *AnalyticsRepo) GetDashboardMetrics(ctx context.Context, actorRole, actorID string) (*repository.DashboardMetrics, error) {
	scope, args := scopeFilter(actorRole, actorID)

	query := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT a.id)                                              AS total_applications,
			COUNT(DISTINCT a.id) FILTER (WHERE a.status = 'APPROVED')         AS approvals,
			COUNT(DISTINCT a.applicant_id)                                    AS clients,
			COUNT(ps.id) FILTER (WHERE ps.status = 'PAID')                    AS paid_payments,
			COUNT(ps.id) FILTER (WHERE ps.status = 'OVERDUE')                 AS overdue_payments,
			AVG(ca.score)                                                     AS average_score
		FROM rental_applications a
		JOIN properties p ON p.id = a.property_id
		LEFT JOIN users owner ON owner.id = p.owner_user_id
		LEFT JOIN credit_analyses ca ON ca.application_id = a.id
		LEFT JOIN insurance_policies ip ON ip.application_id = a.id
		LEFT JOIN payment_schedule ps ON ps.policy_id = ip.id
		%s`, scope)

	var m repository.DashboardMetrics
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&m.TotalApplications, &m.Approvals, &m.Clients,
		&m.PaidPayments, &m.OverduePayments, &m.AverageScore,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	return &m, nil
}

// scopeFilter devolve o WHERE do recorte por papel. ADMIN e DIRECTOR veem
// tudo; papéis desconhecidos não veem nada.
func scopeFilter(actorRole, actorID string) (string, []any) {
	switch actorRole {
	case entity.RoleAdmin, entity.RoleDirector:
		return "", nil
	case entity.RoleImobiliaria:
		return "WHERE p.owner_user_id = $1", []any{actorID}
	case entity.RoleFranqueado:
		return "WHERE owner.parent_user_id = $1", []any{actorID}
	case entity.RoleCorretor:
		return "WHERE a.broker_id = $1", []any{actorID}
	case entity.RoleInquilino:
		return "WHERE a.applicant_id = $1", []any{actorID}
	default:
		return "WHERE FALSE", nil
	}
}
