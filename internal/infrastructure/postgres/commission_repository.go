package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)
var _ repository.CommissionRateRepository = (*CommissionRateRepo)(nil)
var _ repository.PayoutRuleRepository = (*PayoutRuleRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────
// Comissões
// ──────────────────────────────────────────────────────────────────────────────

// CommissionRepo implementação do porto CommissionRepository sobre PostgreSQL.
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository constrói o adaptador de persistência de comissões.
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

const commissionColumns = `id, beneficiary_id, application_id, commission_type, amount, percentage, status, paid_at, notes, created_at, updated_at`

// Create persiste uma comissão. Cada insert é independente: a falha numa
// comissão não desfaz as já gravadas na mesma distribuição.
func (r *CommissionRepo) Create(ctx context.Context, commission *entity.Commission) error {
	query := `
		INSERT INTO commissions (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		commission.ID, commission.BeneficiaryID, commission.ApplicationID, commission.CommissionType,
		commission.Amount, commission.Percentage, commission.Status, commission.PaidAt,
		commission.Notes, commission.CreatedAt, commission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission: %w", err)
	}
	return nil
}

// GetByID busca uma comissão por id. Devolve (nil, nil) quando não existe.
func (r *CommissionRepo) GetByID(ctx context.Context, id string) (*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = $1`
	var c entity.Commission
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.BeneficiaryID, &c.ApplicationID, &c.CommissionType, &c.Amount,
		&c.Percentage, &c.Status, &c.PaidAt, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission: %w", err)
	}
	return &c, nil
}

// Update grava status e PaidAt de uma comissão.
func (r *CommissionRepo) Update(ctx context.Context, commission *entity.Commission) error {
	query := `
		UPDATE commissions
		SET status = $2, paid_at = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		commission.ID, commission.Status, commission.PaidAt, commission.Notes, commission.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update commission: %w", err)
	}
	return nil
}

// ListAll lista todas as comissões.
func (r *CommissionRepo) ListAll(ctx context.Context) ([]*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions ORDER BY created_at DESC`
	return r.list(ctx, query)
}

// ListByBeneficiary lista as comissões de um beneficiário.
func (r *CommissionRepo) ListByBeneficiary(ctx context.Context, beneficiaryID string) ([]*entity.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE beneficiary_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, beneficiaryID)
}

func (r *CommissionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Commission, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	defer rows.Close()

	out := []*entity.Commission{}
	for rows.Next() {
		var c entity.Commission
		if err := rows.Scan(
			&c.ID, &c.BeneficiaryID, &c.ApplicationID, &c.CommissionType, &c.Amount,
			&c.Percentage, &c.Status, &c.PaidAt, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan commission: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ──────────────────────────────────────────────────────────────────────────────
// Taxas por (papel, tipo)
// ──────────────────────────────────────────────────────────────────────────────

// CommissionRateRepo implementação do porto CommissionRateRepository.
type CommissionRateRepo struct {
	q Querier
}

// NewCommissionRateRepository constrói o adaptador de persistência de taxas.
func NewCommissionRateRepository(q Querier) *CommissionRateRepo {
	return &CommissionRateRepo{q: q}
}

const rateColumns = `id, role, commission_type, percentage, is_active, description, created_at, updated_at`

// Create persiste uma taxa de comissão.
func (r *CommissionRateRepo) Create(ctx context.Context, rate *entity.CommissionRate) error {
	query := `
		INSERT INTO commission_rates (` + rateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		rate.ID, rate.Role, rate.CommissionType, rate.Percentage,
		rate.IsActive, rate.Description, rate.CreatedAt, rate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission rate: %w", err)
	}
	return nil
}

// List lista todas as taxas.
func (r *CommissionRateRepo) List(ctx context.Context) ([]*entity.CommissionRate, error) {
	query := `SELECT ` + rateColumns + ` FROM commission_rates ORDER BY role, commission_type`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list commission rates: %w", err)
	}
	defer rows.Close()

	out := []*entity.CommissionRate{}
	for rows.Next() {
		var rate entity.CommissionRate
		if err := rows.Scan(
			&rate.ID, &rate.Role, &rate.CommissionType, &rate.Percentage,
			&rate.IsActive, &rate.Description, &rate.CreatedAt, &rate.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan commission rate: %w", err)
		}
		out = append(out, &rate)
	}
	return out, rows.Err()
}

// GetByRoleAndType busca a taxa de um (papel, tipo). Devolve (nil, nil)
// quando não existe.
func (r *CommissionRateRepo) GetByRoleAndType(ctx context.Context, role, commissionType string) (*entity.CommissionRate, error) {
	query := `SELECT ` + rateColumns + ` FROM commission_rates WHERE role = $1 AND commission_type = $2`
	var rate entity.CommissionRate
	err := r.q.QueryRow(ctx, query, role, commissionType).Scan(
		&rate.ID, &rate.Role, &rate.CommissionType, &rate.Percentage,
		&rate.IsActive, &rate.Description, &rate.CreatedAt, &rate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission rate: %w", err)
	}
	return &rate, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Regras de override
// ──────────────────────────────────────────────────────────────────────────────

// PayoutRuleRepo implementação do porto PayoutRuleRepository.
type PayoutRuleRepo struct {
	q Querier
}

// NewPayoutRuleRepository constrói o adaptador de persistência de regras de repasse.
func NewPayoutRuleRepository(q Querier) *PayoutRuleRepo {
	return &PayoutRuleRepo{q: q}
}

// List lista todas as regras de override.
func (r *PayoutRuleRepo) List(ctx context.Context) ([]*entity.PayoutRule, error) {
	query := `SELECT id, role, percentage, created_at, updated_at FROM payout_rules ORDER BY role`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list payout rules: %w", err)
	}
	defer rows.Close()

	out := []*entity.PayoutRule{}
	for rows.Next() {
		var rule entity.PayoutRule
		if err := rows.Scan(&rule.ID, &rule.Role, &rule.Percentage, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan payout rule: %w", err)
		}
		out = append(out, &rule)
	}
	return out, rows.Err()
}

// GetByRole busca a regra de um papel. Devolve (nil, nil) quando não existe.
func (r *PayoutRuleRepo) GetByRole(ctx context.Context, role string) (*entity.PayoutRule, error) {
	query := `SELECT id, role, percentage, created_at, updated_at FROM payout_rules WHERE role = $1`
	var rule entity.PayoutRule
	err := r.q.QueryRow(ctx, query, role).Scan(&rule.ID, &rule.Role, &rule.Percentage, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payout rule: %w", err)
	}
	return &rule, nil
}

// Upsert grava o percentual do papel, criando a linha se ausente.
func (r *PayoutRuleRepo) Upsert(ctx context.Context, rule *entity.PayoutRule) error {
	query := `
		INSERT INTO payout_rules (id, role, percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (role) DO UPDATE SET percentage = EXCLUDED.percentage, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, rule.ID, rule.Role, rule.Percentage, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert payout rule: %w", err)
	}
	return nil
}
