package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pagpro/fianca-api/internal/application/applications"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ applications.IssuanceTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunIssuance inicia uma transação, executa fn com os repositórios de apólice
// e cronograma amarrados à tx e faz Commit ou Rollback. A emissão grava
// apólice e as 13 parcelas juntas ou não grava nada.
func (r *TxRunner) RunIssuance(ctx context.Context, fn func(
	policyRepo repository.PolicyRepository,
	scheduleRepo repository.PaymentScheduleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	policyRepo := NewPolicyRepository(tx)
	scheduleRepo := NewPaymentScheduleRepository(tx)

	if err := fn(policyRepo, scheduleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
