// Package analysis orquestra as estratégias de scoring: a fórmula
// determinística e o oráculo externo, com fallback transparente.
package analysis

import (
	"context"

	"github.com/pagpro/fianca-api/internal/application/ports"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/scoring"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// Strategy uma estratégia de avaliação de crédito.
// Composição em vez de herança: o Engine injeta a preferida e a reserva.
type Strategy interface {
	Evaluate(ctx context.Context, in ports.AnalysisInput) (*scoring.Result, error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estratégia determinística
// ──────────────────────────────────────────────────────────────────────────────

// RuleBased avalia com a fórmula determinística pura. Nunca falha.
type RuleBased struct {
	params scoring.Params
}

// NewRuleBased constrói a estratégia com os multiplicadores configurados.
func NewRuleBased(params scoring.Params) *RuleBased {
	return &RuleBased{params: params}
}

// Evaluate aplica scoring.Calculate aos fatos da solicitação.
func (s *RuleBased) Evaluate(_ context.Context, in ports.AnalysisInput) (*scoring.Result, error) {
	return scoring.Calculate(scoring.Input{
		Rent:               in.Application.RequestedRentValue,
		Income:             in.Application.MonthlyIncome,
		HasNegativeRecords: in.Application.HasNegativeRecords,
		EmploymentStatus:   in.Application.EmploymentStatus,
	}, s.params), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Estratégia do oráculo externo
// ──────────────────────────────────────────────────────────────────────────────

// Oracle delega a avaliação ao analista externo (LLM).
type Oracle struct {
	analyst ports.CreditAnalyst
}

// NewOracle constrói a estratégia sobre a porta CreditAnalyst.
func NewOracle(analyst ports.CreditAnalyst) *Oracle {
	return &Oracle{analyst: analyst}
}

// Evaluate chama o oráculo. Falha com ErrOracleUnavailable quando não há
// analista configurado; qualquer erro aqui faz o Engine cair na fórmula.
func (s *Oracle) Evaluate(ctx context.Context, in ports.AnalysisInput) (*scoring.Result, error) {
	if s.analyst == nil || !s.analyst.IsAvailable() {
		return nil, domain.ErrOracleUnavailable
	}
	return s.analyst.AnalyzeCredit(ctx, in)
}

// ──────────────────────────────────────────────────────────────────────────────
// Engine
// ──────────────────────────────────────────────────────────────────────────────

// Engine tenta a estratégia preferida e cai na determinística em QUALQUER
// erro. Evaluate nunca devolve erro de negócio: a operação primária da
// solicitação sempre recebe um resultado.
type Engine struct {
	preferred Strategy
	fallback  *RuleBased
	log       *logger.Logger
}

// NewEngine constrói o motor. preferred pode ser nil (só fórmula).
func NewEngine(preferred Strategy, fallback *RuleBased, log *logger.Logger) *Engine {
	return &Engine{preferred: preferred, fallback: fallback, log: log}
}

// Evaluate devolve sempre um resultado. A falha do oráculo é registrada e
// absorvida aqui; nunca chega ao chamador.
func (e *Engine) Evaluate(ctx context.Context, in ports.AnalysisInput) *scoring.Result {
	if e.preferred != nil {
		res, err := e.preferred.Evaluate(ctx, in)
		if err == nil && res != nil {
			return res
		}
		e.log.Warn().
			Err(err).
			Str("application_id", in.Application.ID).
			Msg("oráculo de análise falhou; usando fórmula determinística")
	}
	res, _ := e.fallback.Evaluate(ctx, in)
	return res
}
