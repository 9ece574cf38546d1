package ports

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/scoring"
)

// CreditAnalyst define a porta de saída para o oráculo externo de análise de
// crédito (LLM). Qualquer adaptador (OpenAI, Anthropic, mock) implementa esta
// interface; o motor de scoring só conhece este contrato.
//
// O adaptador é responsável por validar e normalizar a resposta: score
// limitado a [0,100], literais de risco/status verificados contra o conjunto
// conhecido, campos numéricos ausentes preenchidos com a fórmula
// determinística. O contexto deve levar timeout: uma chamada travada não pode
// segurar a transição de status da solicitação.
type CreditAnalyst interface {
	AnalyzeCredit(ctx context.Context, in AnalysisInput) (*scoring.Result, error)
	// IsAvailable informa se o oráculo está configurado (ex: API key presente).
	IsAvailable() bool
}

// AnalysisInput fatos enviados ao oráculo para montar o prompt.
type AnalysisInput struct {
	Application *entity.RentalApplication
	Property    *entity.Property
	Applicant   *entity.User
	Documents   []*entity.Document
}
