package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.PolicyRepository = (*PolicyRepo)(nil)

// PolicyRepo implementação do porto PolicyRepository sobre PostgreSQL.
// O constraint único em application_id sustenta a idempotência da emissão.
type PolicyRepo struct {
	q Querier
}

// NewPolicyRepository constrói o adaptador de persistência de apólices.
func NewPolicyRepository(q Querier) *PolicyRepo {
	return &PolicyRepo{q: q}
}

const policyColumns = `id, policy_number, application_id, status, coverage_amount, monthly_premium, adhesion_fee, start_date, end_date, created_at, updated_at`

// Create persiste uma apólice. Devolve domain.ErrConflict quando já existe
// apólice para a mesma solicitação.
func (r *PolicyRepo) Create(ctx context.Context, policy *entity.InsurancePolicy) error {
	query := `
		INSERT INTO insurance_policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		policy.ID, policy.PolicyNumber, policy.ApplicationID, policy.Status,
		policy.CoverageAmount, policy.MonthlyPremium, policy.AdhesionFee,
		policy.StartDate, policy.EndDate, policy.CreatedAt, policy.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert insurance policy: %w", err)
	}
	return nil
}

// GetByID busca uma apólice por id. Devolve (nil, nil) quando não existe.
func (r *PolicyRepo) GetByID(ctx context.Context, id string) (*entity.InsurancePolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM insurance_policies WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByApplicationID busca a apólice de uma solicitação. Devolve (nil, nil)
// quando não existe.
func (r *PolicyRepo) GetByApplicationID(ctx context.Context, applicationID string) (*entity.InsurancePolicy, error) {
	query := `SELECT ` + policyColumns + ` FROM insurance_policies WHERE application_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, applicationID))
}

func (r *PolicyRepo) scanOne(row pgx.Row) (*entity.InsurancePolicy, error) {
	var p entity.InsurancePolicy
	err := row.Scan(
		&p.ID, &p.PolicyNumber, &p.ApplicationID, &p.Status, &p.CoverageAmount,
		&p.MonthlyPremium, &p.AdhesionFee, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insurance policy: %w", err)
	}
	return &p, nil
}
