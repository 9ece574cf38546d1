package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// PaymentScheduleRepository porta de persistência do cronograma de parcelas.
type PaymentScheduleRepository interface {
	// CreateBatch grava as 13 parcelas da emissão. Chamado uma única vez por
	// apólice, dentro da mesma transação que cria a apólice.
	CreateBatch(ctx context.Context, entries []*entity.PaymentScheduleEntry) error
	GetByID(ctx context.Context, id string) (*entity.PaymentScheduleEntry, error)
	Update(ctx context.Context, entry *entity.PaymentScheduleEntry) error
	ListByPolicyID(ctx context.Context, policyID string) ([]*entity.PaymentScheduleEntry, error)
}
