package analysis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagpro/fianca-api/internal/application/analysis"
	"github.com/pagpro/fianca-api/internal/application/ports"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/scoring"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// fakeAnalyst implementa ports.CreditAnalyst com comportamento programável.
type fakeAnalyst struct {
	available bool
	result    *scoring.Result
	err       error
	calls     int
}

func (f *fakeAnalyst) AnalyzeCredit(_ context.Context, _ ports.AnalysisInput) (*scoring.Result, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeAnalyst) IsAvailable() bool { return f.available }

func analysisInput() ports.AnalysisInput {
	return ports.AnalysisInput{
		Application: &entity.RentalApplication{
			ID:                 "app-1",
			RequestedRentValue: decimal.NewFromInt(1000),
			MonthlyIncome:      decimal.NewFromInt(4000),
		},
	}
}

// Oráculo saudável: o motor usa o resultado dele.
func TestEngine_PrefereOraculo(t *testing.T) {
	oracleRes := &scoring.Result{Score: 88, RiskLevel: entity.RiskLow, SuggestedStatus: entity.ApplicationApproved}
	analyst := &fakeAnalyst{available: true, result: oracleRes}
	eng := analysis.NewEngine(
		analysis.NewOracle(analyst),
		analysis.NewRuleBased(scoring.DefaultParams()),
		logger.Nop(),
	)

	res := eng.Evaluate(context.Background(), analysisInput())

	require.NotNil(t, res)
	assert.Equal(t, 88, res.Score)
	assert.Equal(t, 1, analyst.calls)
}

// Qualquer erro do oráculo é absorvido: o motor devolve a fórmula
// determinística e nunca propaga a falha.
func TestEngine_FallbackEmErroDoOraculo(t *testing.T) {
	analyst := &fakeAnalyst{available: true, err: errors.New("timeout na API")}
	eng := analysis.NewEngine(
		analysis.NewOracle(analyst),
		analysis.NewRuleBased(scoring.DefaultParams()),
		logger.Nop(),
	)

	res := eng.Evaluate(context.Background(), analysisInput())

	require.NotNil(t, res)
	// rent 1000 / income 4000 → score 70 pela fórmula
	assert.Equal(t, 70, res.Score)
	assert.Equal(t, entity.ApplicationInAnalysis, res.SuggestedStatus)
}

// Oráculo não configurado: o motor vai direto para a fórmula.
func TestEngine_OraculoIndisponivel(t *testing.T) {
	analyst := &fakeAnalyst{available: false}
	eng := analysis.NewEngine(
		analysis.NewOracle(analyst),
		analysis.NewRuleBased(scoring.DefaultParams()),
		logger.Nop(),
	)

	res := eng.Evaluate(context.Background(), analysisInput())

	require.NotNil(t, res)
	assert.Equal(t, 70, res.Score)
	assert.Zero(t, analyst.calls, "analista indisponível não deve ser chamado")
}

// Sem estratégia preferida (deploy sem oráculo): só a fórmula.
func TestEngine_SemOraculoConfigurado(t *testing.T) {
	eng := analysis.NewEngine(nil, analysis.NewRuleBased(scoring.DefaultParams()), logger.Nop())

	res := eng.Evaluate(context.Background(), analysisInput())

	require.NotNil(t, res)
	assert.Equal(t, 70, res.Score)
}
