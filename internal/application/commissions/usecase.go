package commissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

// UseCase operações administrativas e de consulta de comissões.
type UseCase struct {
	commissionRepo repository.CommissionRepository
	rateRepo       repository.CommissionRateRepository
	payoutRepo     repository.PayoutRuleRepository
	distributor    *Distributor
}

// NewUseCase constrói o caso de uso. O distribuidor entra só para invalidar
// o cache quando uma regra muda.
func NewUseCase(
	commissionRepo repository.CommissionRepository,
	rateRepo repository.CommissionRateRepository,
	payoutRepo repository.PayoutRuleRepository,
	distributor *Distributor,
) *UseCase {
	return &UseCase{
		commissionRepo: commissionRepo,
		rateRepo:       rateRepo,
		payoutRepo:     payoutRepo,
		distributor:    distributor,
	}
}

// SetPayoutRule atualiza (ou cria) o percentual de override de um papel e
// invalida o cache do distribuidor para as próximas distribuições.
func (uc *UseCase) SetPayoutRule(ctx context.Context, in dto.UpdatePayoutRuleRequest) (*entity.PayoutRule, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("papel %q: %w", in.Role, domain.ErrInvalidInput)
	}
	if in.Percentage.IsNegative() || in.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("percentual fora de [0,100]: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	rule := &entity.PayoutRule{
		ID:         uuid.New().String(),
		Role:       in.Role,
		Percentage: in.Percentage,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if existing, err := uc.payoutRepo.GetByRole(ctx, in.Role); err != nil {
		return nil, err
	} else if existing != nil {
		rule.ID = existing.ID
		rule.CreatedAt = existing.CreatedAt
	}

	if err := uc.payoutRepo.Upsert(ctx, rule); err != nil {
		return nil, fmt.Errorf("gravar payout rule: %w", err)
	}
	uc.distributor.InvalidateCache()
	return rule, nil
}

// ListPayoutRules lista todas as regras de repasse.
func (uc *UseCase) ListPayoutRules(ctx context.Context) ([]*entity.PayoutRule, error) {
	return uc.payoutRepo.List(ctx)
}

// CreateCommissionRate cria uma taxa de comissão (papel, tipo de evento).
func (uc *UseCase) CreateCommissionRate(ctx context.Context, in dto.CreateCommissionRateRequest) (*entity.CommissionRate, error) {
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("papel %q: %w", in.Role, domain.ErrInvalidInput)
	}
	if in.CommissionType == "" {
		return nil, fmt.Errorf("tipo de comissão obrigatório: %w", domain.ErrInvalidInput)
	}
	if in.Percentage.IsNegative() || in.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("percentual fora de [0,100]: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	rate := &entity.CommissionRate{
		ID:             uuid.New().String(),
		Role:           in.Role,
		CommissionType: in.CommissionType,
		Percentage:     in.Percentage,
		IsActive:       true,
		Description:    in.Description,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.rateRepo.Create(ctx, rate); err != nil {
		return nil, fmt.Errorf("gravar taxa de comissão: %w", err)
	}
	return rate, nil
}

// ListCommissionRates lista todas as taxas cadastradas.
func (uc *UseCase) ListCommissionRates(ctx context.Context) ([]*entity.CommissionRate, error) {
	return uc.rateRepo.List(ctx)
}

// ListCommissions lista comissões. ADMIN e DIRECTOR veem todas; os demais
// papéis só as próprias.
func (uc *UseCase) ListCommissions(ctx context.Context, actor dto.Actor) ([]*entity.Commission, error) {
	if actor.Role == entity.RoleAdmin || actor.Role == entity.RoleDirector {
		return uc.commissionRepo.ListAll(ctx)
	}
	return uc.commissionRepo.ListByBeneficiary(ctx, actor.ID)
}

// UpdateCommissionStatus progride o status de uma comissão; PAID carimba
// PaidAt. Restrito a ADMIN.
func (uc *UseCase) UpdateCommissionStatus(ctx context.Context, actor dto.Actor, id, status string) (*entity.Commission, error) {
	if actor.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !entity.IsValidCommissionStatus(status) {
		return nil, fmt.Errorf("status %q: %w", status, domain.ErrInvalidInput)
	}
	commission, err := uc.commissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if commission == nil {
		return nil, domain.ErrNotFound
	}

	commission.Status = status
	commission.UpdatedAt = time.Now()
	if status == entity.CommissionPaid {
		now := time.Now()
		commission.PaidAt = &now
	}
	if err := uc.commissionRepo.Update(ctx, commission); err != nil {
		return nil, fmt.Errorf("atualizar comissão: %w", err)
	}
	return commission, nil
}

// Summary resume as comissões de um beneficiário: contagens por status e a
// soma das pagas.
func (uc *UseCase) Summary(ctx context.Context, beneficiaryID string) (*dto.CommissionSummaryDTO, error) {
	list, err := uc.commissionRepo.ListByBeneficiary(ctx, beneficiaryID)
	if err != nil {
		return nil, err
	}
	summary := &dto.CommissionSummaryDTO{TotalAmount: decimal.Zero}
	for _, c := range list {
		switch c.Status {
		case entity.CommissionPending:
			summary.TotalPending++
		case entity.CommissionApproved:
			summary.TotalApproved++
		case entity.CommissionPaid:
			summary.TotalPaid++
			summary.TotalAmount = summary.TotalAmount.Add(c.Amount)
		}
	}
	return summary, nil
}
