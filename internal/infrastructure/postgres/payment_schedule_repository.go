package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.PaymentScheduleRepository = (*PaymentScheduleRepo)(nil)

// PaymentScheduleRepo implementação do porto PaymentScheduleRepository sobre
// PostgreSQL.
type PaymentScheduleRepo struct {
	q Querier
}

// NewPaymentScheduleRepository constrói o adaptador de persistência do cronograma.
func NewPaymentScheduleRepository(q Querier) *PaymentScheduleRepo {
	return &PaymentScheduleRepo{q: q}
}

const scheduleColumns = `id, policy_id, due_date, amount, status, payment_method, paid_at, payment_reference, notes, created_at, updated_at`

// CreateBatch grava as parcelas da emissão numa única rodada de inserts.
// Chamado dentro da mesma transação que cria a apólice.
func (r *PaymentScheduleRepo) CreateBatch(ctx context.Context, entries []*entity.PaymentScheduleEntry) error {
	query := `
		INSERT INTO payment_schedule (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, e := range entries {
		_, err := r.q.Exec(ctx, query,
			e.ID, e.PolicyID, e.DueDate, e.Amount, e.Status, e.PaymentMethod,
			e.PaidAt, e.PaymentReference, e.Notes, e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert payment schedule entry: %w", err)
		}
	}
	return nil
}

// GetByID busca uma parcela por id. Devolve (nil, nil) quando não existe.
func (r *PaymentScheduleRepo) GetByID(ctx context.Context, id string) (*entity.PaymentScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedule WHERE id = $1`
	var e entity.PaymentScheduleEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.PolicyID, &e.DueDate, &e.Amount, &e.Status, &e.PaymentMethod,
		&e.PaidAt, &e.PaymentReference, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment schedule entry: %w", err)
	}
	return &e, nil
}

// Update grava status, referência externa, notas e PaidAt de uma parcela.
func (r *PaymentScheduleRepo) Update(ctx context.Context, entry *entity.PaymentScheduleEntry) error {
	query := `
		UPDATE payment_schedule
		SET status = $2, paid_at = $3, payment_reference = $4, notes = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.Status, entry.PaidAt, entry.PaymentReference, entry.Notes, entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payment schedule entry: %w", err)
	}
	return nil
}

// ListByPolicyID lista as parcelas de uma apólice em ordem de vencimento.
func (r *PaymentScheduleRepo) ListByPolicyID(ctx context.Context, policyID string) ([]*entity.PaymentScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedule WHERE policy_id = $1 ORDER BY due_date ASC`
	rows, err := r.q.Query(ctx, query, policyID)
	if err != nil {
		return nil, fmt.Errorf("list payment schedule: %w", err)
	}
	defer rows.Close()

	out := []*entity.PaymentScheduleEntry{}
	for rows.Next() {
		var e entity.PaymentScheduleEntry
		if err := rows.Scan(
			&e.ID, &e.PolicyID, &e.DueDate, &e.Amount, &e.Status, &e.PaymentMethod,
			&e.PaidAt, &e.PaymentReference, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment schedule entry: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
