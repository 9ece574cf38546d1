package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// CreditAnalysisRepository porta de persistência da análise de crédito.
// O par DeleteByApplicationID + Create sustenta o invariante "no máximo uma
// análise corrente por solicitação": a reavaliação apaga antes de gravar.
type CreditAnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.CreditAnalysis) error
	GetByApplicationID(ctx context.Context, applicationID string) (*entity.CreditAnalysis, error)
	DeleteByApplicationID(ctx context.Context, applicationID string) error
}
