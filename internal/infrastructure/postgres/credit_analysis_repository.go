package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.CreditAnalysisRepository = (*CreditAnalysisRepo)(nil)

// CreditAnalysisRepo implementação do porto CreditAnalysisRepository sobre
// PostgreSQL. Indicators vai como JSONB.
type CreditAnalysisRepo struct {
	q Querier
}

// NewCreditAnalysisRepository constrói o adaptador de persistência de análises.
func NewCreditAnalysisRepository(q Querier) *CreditAnalysisRepo {
	return &CreditAnalysisRepo{q: q}
}

// Create persiste uma análise de crédito.
func (r *CreditAnalysisRepo) Create(ctx context.Context, analysis *entity.CreditAnalysis) error {
	indicators, err := json.Marshal(analysis.Indicators)
	if err != nil {
		return fmt.Errorf("serializar indicadores: %w", err)
	}
	query := `
		INSERT INTO credit_analyses
			(id, application_id, score, risk_level, maximum_coverage, recommended_monthly_fee,
			 recommended_adhesion_fee, indicators, analyst_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(ctx, query,
		analysis.ID, analysis.ApplicationID, analysis.Score, analysis.RiskLevel,
		analysis.MaximumCoverage, analysis.RecommendedMonthlyFee, analysis.RecommendedAdhesionFee,
		indicators, analysis.AnalystNotes, analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit analysis: %w", err)
	}
	return nil
}

// GetByApplicationID busca a análise corrente de uma solicitação. Devolve
// (nil, nil) quando não existe.
func (r *CreditAnalysisRepo) GetByApplicationID(ctx context.Context, applicationID string) (*entity.CreditAnalysis, error) {
	query := `
		SELECT id, application_id, score, risk_level, maximum_coverage, recommended_monthly_fee,
		       recommended_adhesion_fee, indicators, analyst_notes, created_at
		FROM credit_analyses WHERE application_id = $1`
	var (
		a          entity.CreditAnalysis
		indicators []byte
	)
	err := r.q.QueryRow(ctx, query, applicationID).Scan(
		&a.ID, &a.ApplicationID, &a.Score, &a.RiskLevel, &a.MaximumCoverage,
		&a.RecommendedMonthlyFee, &a.RecommendedAdhesionFee, &indicators, &a.AnalystNotes, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit analysis: %w", err)
	}
	if len(indicators) > 0 {
		if err := json.Unmarshal(indicators, &a.Indicators); err != nil {
			return nil, fmt.Errorf("desserializar indicadores: %w", err)
		}
	}
	return &a, nil
}

// DeleteByApplicationID remove a análise corrente de uma solicitação. Não é
// erro não haver linha: a primeira avaliação não tem o que apagar.
func (r *CreditAnalysisRepo) DeleteByApplicationID(ctx context.Context, applicationID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM credit_analyses WHERE application_id = $1`, applicationID)
	if err != nil {
		return fmt.Errorf("delete credit analysis: %w", err)
	}
	return nil
}
