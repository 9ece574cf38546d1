package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// PolicyRepository porta de persistência para apólices.
//
// Create deve devolver domain.ErrConflict quando já existe apólice para a
// mesma solicitação (constraint único em application_id): é isso que torna a
// emissão idempotente sob reavaliações concorrentes; quem perde a corrida
// trata o conflito como no-op e reutiliza a apólice existente.
type PolicyRepository interface {
	Create(ctx context.Context, policy *entity.InsurancePolicy) error
	GetByID(ctx context.Context, id string) (*entity.InsurancePolicy, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*entity.InsurancePolicy, error)
}
