package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Níveis de risco atribuídos pelo scoring.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// IsValidRiskLevel informa se o nível de risco é um dos literais conhecidos.
func IsValidRiskLevel(s string) bool {
	switch s {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// CreditAnalysis resultado persistido de uma avaliação de crédito.
// Invariante: no máximo uma análise corrente por solicitação; a reavaliação
// apaga a anterior antes de gravar a nova.
type CreditAnalysis struct {
	ID                     string
	ApplicationID          string
	Score                  int // 0–100
	RiskLevel              string
	MaximumCoverage        decimal.Decimal
	RecommendedMonthlyFee  decimal.Decimal
	RecommendedAdhesionFee decimal.Decimal
	Indicators             map[string]any // renda, aluguel, rácio, multiplicadores usados
	AnalystNotes           string
	CreatedAt              time.Time
}
