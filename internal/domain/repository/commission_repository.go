package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// CommissionRepository porta de persistência para comissões.
// Cada Create é independente: a falha ao creditar um ancestral não desfaz as
// comissões já gravadas para ancestrais mais próximos.
type CommissionRepository interface {
	Create(ctx context.Context, commission *entity.Commission) error
	GetByID(ctx context.Context, id string) (*entity.Commission, error)
	Update(ctx context.Context, commission *entity.Commission) error
	ListAll(ctx context.Context) ([]*entity.Commission, error)
	ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]*entity.Commission, error)
}

// CommissionRateRepository porta de persistência das taxas por (papel, tipo).
type CommissionRateRepository interface {
	Create(ctx context.Context, rate *entity.CommissionRate) error
	List(ctx context.Context) ([]*entity.CommissionRate, error)
	GetByRoleAndType(ctx context.Context, role, commissionType string) (*entity.CommissionRate, error)
}

// PayoutRuleRepository porta de persistência das regras de override.
// Upsert atualiza o percentual do papel, criando a linha se ausente.
type PayoutRuleRepository interface {
	List(ctx context.Context) ([]*entity.PayoutRule, error)
	GetByRole(ctx context.Context, role string) (*entity.PayoutRule, error)
	Upsert(ctx context.Context, rule *entity.PayoutRule) error
}
