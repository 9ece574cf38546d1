package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateApplicationRequest payload de criação de solicitação.
// ApplicantID é obrigatório quando quem cria não é o próprio inquilino;
// BrokerID é opcional (preenchido automaticamente quando o ator é corretor).
type CreateApplicationRequest struct {
	PropertyID         string          `json:"property_id"`
	ApplicantID        string          `json:"applicant_id,omitempty"`
	BrokerID           string          `json:"broker_id,omitempty"`
	MonthlyIncome      decimal.Decimal `json:"monthly_income"`
	HasNegativeRecords bool            `json:"has_negative_records"`
	EmploymentStatus   string          `json:"employment_status,omitempty"`
	Notes              string          `json:"notes,omitempty"`
}

// UpdateStatusRequest mudança manual de status por ator autorizado.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// UpdatePaymentStatusRequest progressão de status de uma parcela.
type UpdatePaymentStatusRequest struct {
	PaymentID        string `json:"payment_id"`
	Status           string `json:"status"`
	PaymentReference string `json:"payment_reference,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// CreditAnalysisDTO análise de crédito corrente de uma solicitação.
type CreditAnalysisDTO struct {
	ID                     string          `json:"id"`
	Score                  int             `json:"score"`
	RiskLevel              string          `json:"risk_level"`
	MaximumCoverage        decimal.Decimal `json:"maximum_coverage"`
	RecommendedMonthlyFee  decimal.Decimal `json:"recommended_monthly_fee"`
	RecommendedAdhesionFee decimal.Decimal `json:"recommended_adhesion_fee"`
	Indicators             map[string]any  `json:"indicators,omitempty"`
	AnalystNotes           string          `json:"analyst_notes,omitempty"`
}

// PaymentEntryDTO uma parcela do cronograma.
type PaymentEntryDTO struct {
	ID               string          `json:"id"`
	DueDate          time.Time       `json:"due_date"`
	Amount           decimal.Decimal `json:"amount"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"payment_method"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	PaymentReference string          `json:"payment_reference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
}

// PolicyDTO apólice emitida.
type PolicyDTO struct {
	ID             string            `json:"id"`
	PolicyNumber   string            `json:"policy_number"`
	Status         string            `json:"status"`
	CoverageAmount decimal.Decimal   `json:"coverage_amount"`
	MonthlyPremium decimal.Decimal   `json:"monthly_premium"`
	AdhesionFee    decimal.Decimal   `json:"adhesion_fee"`
	StartDate      time.Time         `json:"start_date"`
	EndDate        time.Time         `json:"end_date"`
	Payments       []PaymentEntryDTO `json:"payments,omitempty"`
}

// ApplicationResponse visão completa de uma solicitação.
type ApplicationResponse struct {
	ID                 string             `json:"id"`
	ApplicationNumber  string             `json:"application_number"`
	PropertyID         string             `json:"property_id"`
	ApplicantID        string             `json:"applicant_id"`
	BrokerID           *string            `json:"broker_id,omitempty"`
	Status             string             `json:"status"`
	RequestedRentValue decimal.Decimal    `json:"requested_rent_value"`
	MonthlyIncome      decimal.Decimal    `json:"monthly_income"`
	HasNegativeRecords bool               `json:"has_negative_records"`
	EmploymentStatus   string             `json:"employment_status,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	CreditAnalysis     *CreditAnalysisDTO `json:"credit_analysis,omitempty"`
	Policy             *PolicyDTO         `json:"policy,omitempty"`
}

// DashboardMetricsDTO agregados do painel para o ator.
type DashboardMetricsDTO struct {
	Approvals         int      `json:"approvals"`
	TotalApplications int      `json:"total_applications"`
	Clients           int      `json:"clients"`
	DefaultRate       float64  `json:"default_rate"`
	AverageScore      *float64 `json:"average_score"`
}
