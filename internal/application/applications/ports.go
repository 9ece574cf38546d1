package applications

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/repository"
)

// IssuanceTxRunner executa a emissão de apólice dentro de uma transação:
// apólice e as 13 parcelas, ou nada. Uma apólice sem cronograma é estado
// inválido, então a gravação das duas coisas é atômica.
type IssuanceTxRunner interface {
	RunIssuance(ctx context.Context, fn func(
		policyRepo repository.PolicyRepository,
		scheduleRepo repository.PaymentScheduleRepository,
	) error) error
}
