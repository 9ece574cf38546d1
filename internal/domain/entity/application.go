package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do ciclo de vida de uma solicitação de seguro fiança.
// SUBMITTED é o estado inicial; o scoring leva a IN_ANALYSIS, APPROVED ou
// REJECTED. APPROVED dispara a emissão da apólice (uma única vez).
const (
	ApplicationSubmitted  = "SUBMITTED"
	ApplicationInAnalysis = "IN_ANALYSIS"
	ApplicationApproved   = "APPROVED"
	ApplicationRejected   = "REJECTED"
)

// IsValidApplicationStatus informa se o status é um dos literais conhecidos.
func IsValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationSubmitted, ApplicationInAnalysis, ApplicationApproved, ApplicationRejected:
		return true
	}
	return false
}

// RentalApplication uma solicitação de seguro fiança sobre um imóvel.
// Invariante: RequestedRentValue e MonthlyIncome nunca são negativos.
// Nunca é apagada fisicamente; reavaliações apenas mudam status e análise.
type RentalApplication struct {
	ID                 string
	ApplicationNumber  string // APP-<timestamp>-<rand>, único
	PropertyID         string
	ApplicantID        string  // inquilino solicitante
	BrokerID           *string // corretor, opcional
	Status             string
	RequestedRentValue decimal.Decimal
	MonthlyIncome      decimal.Decimal
	HasNegativeRecords bool
	EmploymentStatus   string
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
