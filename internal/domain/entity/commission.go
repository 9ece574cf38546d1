package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de comissão por evento monetário. O distribuidor hierárquico deriva
// o tipo de override acrescentando o sufixo OverrideSuffix.
const (
	CommissionSetupFee   = "SETUP_FEE"
	CommissionMonthlyFee = "MONTHLY_FEE"
	CommissionReferral   = "REFERRAL"

	OverrideSuffix = "_OVERRIDE"
)

// Status de uma comissão.
const (
	CommissionPending   = "PENDING"
	CommissionApproved  = "APPROVED"
	CommissionPaid      = "PAID"
	CommissionCancelled = "CANCELLED"
)

// IsValidCommissionStatus informa se o status é um dos conhecidos.
func IsValidCommissionStatus(s string) bool {
	switch s {
	case CommissionPending, CommissionApproved, CommissionPaid, CommissionCancelled:
		return true
	}
	return false
}

// Commission crédito monetário a um usuário por transação de um descendente
// na rede. Imutável depois de criada, exceto status e PaidAt.
type Commission struct {
	ID             string
	BeneficiaryID  string
	ApplicationID  *string
	CommissionType string
	Amount         decimal.Decimal
	Percentage     decimal.Decimal
	Status         string
	PaidAt         *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CommissionRate percentual de comissão por (papel, tipo de evento).
type CommissionRate struct {
	ID             string
	Role           string
	CommissionType string
	Percentage     decimal.Decimal
	IsActive       bool
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// PayoutRule percentual de override que um papel ganha nas transações de
// descendentes. Uma regra por papel; semeada com padrões se ausente.
type PayoutRule struct {
	ID         string
	Role       string
	Percentage decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
