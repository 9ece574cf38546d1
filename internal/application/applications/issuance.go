package applications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pagpro/fianca-api/internal/application/ports"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

// adhesionNote marca a parcela de adesão no cronograma. É também o que
// identifica o evento SETUP_FEE quando a parcela é paga.
const adhesionNote = "Taxa de adesão"

// policyTermMonths vigência e quantidade de mensalidades do cronograma.
const policyTermMonths = 12

// issuePolicy emite a apólice de uma solicitação aprovada, com o cronograma
// de 13 parcelas, numa única transação.
//
// Idempotente: se já existe apólice para a solicitação, não faz nada. A
// checagem prévia poupa uma transação, mas quem garante o invariante sob
// corrida é o constraint único de application_id; o Create que perde devolve
// ErrConflict e é tratado como no-op.
func (uc *UseCase) issuePolicy(ctx context.Context, app *entity.RentalApplication, coverage, monthly, adhesion decimal.Decimal) error {
	existing, err := uc.policyRepo.GetByApplicationID(ctx, app.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := time.Now()
	policy := &entity.InsurancePolicy{
		ID:             uuid.New().String(),
		PolicyNumber:   generateNumber("POL"),
		ApplicationID:  app.ID,
		Status:         entity.PolicyActive,
		CoverageAmount: coverage,
		MonthlyPremium: monthly,
		AdhesionFee:    adhesion,
		StartDate:      now,
		EndDate:        now.AddDate(0, policyTermMonths, 0),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	entries := buildSchedule(policy)

	err = uc.txRunner.RunIssuance(ctx, func(
		policyRepo repository.PolicyRepository,
		scheduleRepo repository.PaymentScheduleRepository,
	) error {
		if err := policyRepo.Create(ctx, policy); err != nil {
			return err
		}
		return scheduleRepo.CreateBatch(ctx, entries)
	})
	if err != nil {
		// Outra avaliação concorrente emitiu primeiro: no-op por idempotência.
		if errors.Is(err, domain.ErrConflict) {
			uc.log.Info().
				Str("application_id", app.ID).
				Msg("apólice já emitida por avaliação concorrente; emissão ignorada")
			return nil
		}
		return fmt.Errorf("emitir apólice: %w", err)
	}

	uc.log.Info().
		Str("application_id", app.ID).
		Str("policy_number", policy.PolicyNumber).
		Int("installments", len(entries)).
		Msg("apólice emitida")
	return nil
}

// buildSchedule monta as 13 parcelas: adesão com vencimento imediato e 12
// mensalidades nos meses seguintes, todas PENDING. Construção pura, sem I/O.
func buildSchedule(policy *entity.InsurancePolicy) []*entity.PaymentScheduleEntry {
	now := policy.StartDate
	entries := make([]*entity.PaymentScheduleEntry, 0, policyTermMonths+1)

	entries = append(entries, &entity.PaymentScheduleEntry{
		ID:            uuid.New().String(),
		PolicyID:      policy.ID,
		DueDate:       now,
		Amount:        policy.AdhesionFee,
		Status:        entity.PaymentPending,
		PaymentMethod: entity.PaymentMethodBoleto,
		Notes:         adhesionNote,
		CreatedAt:     now,
		UpdatedAt:     now,
	})

	for i := 1; i <= policyTermMonths; i++ {
		entries = append(entries, &entity.PaymentScheduleEntry{
			ID:            uuid.New().String(),
			PolicyID:      policy.ID,
			DueDate:       now.AddDate(0, i, 0),
			Amount:        policy.MonthlyPremium,
			Status:        entity.PaymentPending,
			PaymentMethod: entity.PaymentMethodBoleto,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return entries
}

// issuanceAmounts resolve cobertura e taxas para uma emissão disparada por
// mudança manual de status: usa a análise corrente se existir; sem análise,
// recalcula pela fórmula determinística.
func (uc *UseCase) issuanceAmounts(ctx context.Context, app *entity.RentalApplication) (coverage, monthly, adhesion decimal.Decimal, err error) {
	creditAnalysis, err := uc.analysisRepo.GetByApplicationID(ctx, app.ID)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	if creditAnalysis != nil {
		return creditAnalysis.MaximumCoverage, creditAnalysis.RecommendedMonthlyFee, creditAnalysis.RecommendedAdhesionFee, nil
	}

	result, err := uc.ruleBased.Evaluate(ctx, ports.AnalysisInput{Application: app})
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}
	return result.MaximumCoverage, result.MonthlyFee, result.AdhesionFee, nil
}
