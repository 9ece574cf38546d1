package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status da apólice.
const (
	PolicyPending   = "PENDING"
	PolicyActive    = "ACTIVE"
	PolicyCancelled = "CANCELLED"
	PolicyExpired   = "EXPIRED"
)

// InsurancePolicy apólice emitida quando a solicitação é aprovada.
// Relação um-para-um com a solicitação: criada no máximo uma vez, nunca
// recriada. A unicidade de ApplicationID é garantida por constraint na DB
// para que a emissão seja idempotente mesmo sob reavaliações concorrentes.
type InsurancePolicy struct {
	ID             string
	PolicyNumber   string // POL-<timestamp>-<rand>, único
	ApplicationID  string
	Status         string
	CoverageAmount decimal.Decimal
	MonthlyPremium decimal.Decimal
	AdhesionFee    decimal.Decimal
	StartDate      time.Time
	EndDate        time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
