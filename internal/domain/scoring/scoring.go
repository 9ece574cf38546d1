// Package scoring contém a fórmula determinística de análise de crédito do
// seguro fiança. É puro: sem I/O, sem relógio, sem dependências de
// infraestrutura, o que permite testar os vetores de score exatos.
package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// Limites do score da fórmula determinística.
const (
	MinScore = 10
	MaxScore = 100

	// Pontos de corte das faixas de decisão. Inclusivos nos dois extremos:
	// >= ApproveThreshold aprova, <= RejectThreshold recusa; o miolo
	// (46–74) vai para análise manual.
	ApproveThreshold = 75
	RejectThreshold  = 45
)

// Params multiplicadores de cobertura e taxas. Vêm da configuração; os
// valores padrão são 3x, 0.15 e 1.0.
type Params struct {
	CoverageMultiplier float64
	MonthlyPremiumRate float64
	AdhesionFeeRate    float64
}

// DefaultParams devolve os multiplicadores padrão do produto.
func DefaultParams() Params {
	return Params{
		CoverageMultiplier: 3,
		MonthlyPremiumRate: 0.15,
		AdhesionFeeRate:    1,
	}
}

// Input fatos financeiros de uma solicitação.
type Input struct {
	Rent               decimal.Decimal
	Income             decimal.Decimal
	HasNegativeRecords bool
	EmploymentStatus   string
}

// Result saída de uma avaliação de risco.
type Result struct {
	Score           int // 0–100
	RiskLevel       string
	MaximumCoverage decimal.Decimal
	MonthlyFee      decimal.Decimal
	AdhesionFee     decimal.Decimal
	Indicators      map[string]any
	SuggestedStatus string
	AnalystNotes    string
}

// Calculate aplica a fórmula determinística:
//
//	incomeRentRatio    = aluguel / renda        (renda <= 0 -> 1, pior caso)
//	affordabilityScore = max(0, 1 - incomeRentRatio)
//	baseScore          = (affordabilityScore*70 + (restrições ? 0 : 20)) / 1.2
//	score              = clamp(round(baseScore - penalidade*100 + 10), 10, 100)
//
// onde penalidade = 0.25 com restrições negativas, 0 sem.
func Calculate(in Input, p Params) *Result {
	rent, _ := in.Rent.Float64()
	income, _ := in.Income.Float64()

	ratio := 1.0
	if income > 0 {
		ratio = rent / income
	}
	affordability := math.Max(0, 1-ratio)

	negativeBonus := 20.0
	negativePenalty := 0.0
	if in.HasNegativeRecords {
		negativeBonus = 0
		negativePenalty = 0.25
	}
	baseScore := (affordability*70 + negativeBonus) / 1.2
	score := clampScore(int(math.Round(baseScore-negativePenalty*100+10)), MinScore, MaxScore)

	status, risk := BandFor(score)

	coverageMul := decimal.NewFromFloat(p.CoverageMultiplier)
	monthlyRate := decimal.NewFromFloat(p.MonthlyPremiumRate)
	adhesionRate := decimal.NewFromFloat(p.AdhesionFeeRate)

	return &Result{
		Score:           score,
		RiskLevel:       risk,
		MaximumCoverage: in.Rent.Mul(coverageMul).Round(2),
		MonthlyFee:      in.Rent.Mul(monthlyRate).Round(2),
		AdhesionFee:     in.Rent.Mul(adhesionRate).Round(2),
		Indicators: map[string]any{
			"income":             income,
			"rent":               rent,
			"incomeRentRatio":    ratio,
			"coverageMultiplier": p.CoverageMultiplier,
			"monthlyPremiumRate": p.MonthlyPremiumRate,
			"adhesionFeeRate":    p.AdhesionFeeRate,
		},
		SuggestedStatus: status,
	}
}

// BandFor mapeia um score às faixas de decisão: >= 75 aprova com risco baixo,
// <= 45 recusa com risco alto, o resto vai para análise manual (risco médio).
func BandFor(score int) (status, riskLevel string) {
	switch {
	case score >= ApproveThreshold:
		return entity.ApplicationApproved, entity.RiskLow
	case score <= RejectThreshold:
		return entity.ApplicationRejected, entity.RiskHigh
	default:
		return entity.ApplicationInAnalysis, entity.RiskMedium
	}
}

func clampScore(s, lo, hi int) int {
	if s < lo {
		return lo
	}
	if s > hi {
		return hi
	}
	return s
}
