package repository

import "context"

// DashboardMetrics agregados do painel, já calculados pela consulta.
type DashboardMetrics struct {
	TotalApplications int
	Approvals         int
	Clients           int // solicitantes distintos
	PaidPayments      int
	OverduePayments   int
	AverageScore      *float64 // nil quando não há análises no recorte
}

// AnalyticsRepository consultas read-only de agregados para o dashboard.
// O recorte por papel (imobiliária, inquilino, corretor, franqueado) é
// aplicado na própria consulta; ADMIN e DIRECTOR veem tudo.
type AnalyticsRepository interface {
	GetDashboardMetrics(ctx context.Context, actorRole, actorID string) (*DashboardMetrics, error)
}
