package dto

import "github.com/shopspring/decimal"

// UpdatePayoutRuleRequest ajuste administrativo do percentual de override de
// um papel da rede.
type UpdatePayoutRuleRequest struct {
	Role       string          `json:"role"`
	Percentage decimal.Decimal `json:"percentage"`
}

// CreateCommissionRateRequest criação de taxa de comissão (papel, tipo).
type CreateCommissionRateRequest struct {
	Role           string          `json:"role"`
	CommissionType string          `json:"commission_type"`
	Percentage     decimal.Decimal `json:"percentage"`
	Description    string          `json:"description,omitempty"`
}

// UpdateCommissionStatusRequest progressão de status de uma comissão.
type UpdateCommissionStatusRequest struct {
	Status string `json:"status"`
}

// CommissionSummaryDTO resumo das comissões de um beneficiário.
type CommissionSummaryDTO struct {
	TotalPending  int             `json:"total_pending"`
	TotalApproved int             `json:"total_approved"`
	TotalPaid     int             `json:"total_paid"`
	TotalAmount   decimal.Decimal `json:"total_amount"` // soma das pagas
}
