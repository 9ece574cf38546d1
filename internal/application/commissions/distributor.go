// Package commissions implementa a distribuição hierárquica de comissões e a
// administração de regras de repasse (payout rules) e taxas.
package commissions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// Percentuais padrão de override por papel, semeados apenas quando a linha
// está ausente. O inquilino é sempre a origem, nunca beneficiário do próprio
// evento, mas pode receber override de indicados abaixo dele.
var defaultPayoutPercentages = map[string]decimal.Decimal{
	entity.RoleDirector:    decimal.NewFromInt(10),
	entity.RoleFranqueado:  decimal.NewFromInt(15),
	entity.RoleImobiliaria: decimal.NewFromInt(10),
	entity.RoleCorretor:    decimal.NewFromInt(5),
	entity.RoleInquilino:   decimal.NewFromInt(5),
}

// Distributor percorre a cadeia de ancestrais de um beneficiário creditando
// cada nível com o percentual de override do seu papel.
//
// As regras de repasse ficam num cache em memória de posse deste componente:
// populado sob demanda no primeiro uso, limpo em qualquer atualização de
// regra (InvalidateCache).
type Distributor struct {
	userRepo       repository.UserRepository
	payoutRepo     repository.PayoutRuleRepository
	commissionRepo repository.CommissionRepository
	log            *logger.Logger

	mu    sync.Mutex
	cache map[string]decimal.Decimal // papel -> percentual; nil = não carregado
}

// NewDistributor constrói o distribuidor.
func NewDistributor(
	userRepo repository.UserRepository,
	payoutRepo repository.PayoutRuleRepository,
	commissionRepo repository.CommissionRepository,
	log *logger.Logger,
) *Distributor {
	return &Distributor{
		userRepo:       userRepo,
		payoutRepo:     payoutRepo,
		commissionRepo: commissionRepo,
		log:            log,
	}
}

// SeedDefaults insere os percentuais padrão para os papéis que ainda não têm
// regra. Linhas existentes nunca são sobrescritas.
func (d *Distributor) SeedDefaults(ctx context.Context) error {
	for role, pct := range defaultPayoutPercentages {
		existing, err := d.payoutRepo.GetByRole(ctx, role)
		if err != nil {
			return fmt.Errorf("seed payout rules: consultar %s: %w", role, err)
		}
		if existing != nil {
			continue
		}
		now := time.Now()
		rule := &entity.PayoutRule{
			ID:         uuid.New().String(),
			Role:       role,
			Percentage: pct,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := d.payoutRepo.Upsert(ctx, rule); err != nil {
			return fmt.Errorf("seed payout rules: gravar %s: %w", role, err)
		}
	}
	d.InvalidateCache()
	return nil
}

// InvalidateCache descarta o cache de regras. Deve ser chamado após qualquer
// atualização de regra para que as próximas distribuições vejam percentuais
// frescos.
func (d *Distributor) InvalidateCache() {
	d.mu.Lock()
	d.cache = nil
	d.mu.Unlock()
}

// rules devolve o mapa papel -> percentual, carregando da DB se necessário.
func (d *Distributor) rules(ctx context.Context) (map[string]decimal.Decimal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cache != nil {
		return d.cache, nil
	}
	list, err := d.payoutRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("carregar payout rules: %w", err)
	}
	m := make(map[string]decimal.Decimal, len(list))
	for _, r := range list {
		m[r.Role] = r.Percentage
	}
	d.cache = m
	return m, nil
}

// Distribute sobe a cadeia de ancestrais a partir da origem, criando uma
// comissão <commissionType>_OVERRIDE PENDING para cada ancestral cujo papel
// tem percentual > 0. A origem nunca é creditada por si mesma.
//
// A subida termina no primeiro nó sem pai. Como defesa contra dados cíclicos
// (pai apontando para descendente), o passeio é limitado ao número de papéis
// distintos; estourar o limite é inconsistência de dados: registrada e
// devolvida como ErrDataIntegrity, nunca um laço infinito.
//
// Falha ao creditar UM ancestral não desfaz as comissões já gravadas nem
// interrompe a cadeia: sucesso parcial é aceitável e fica no log.
// Devolve o número de comissões criadas.
func (d *Distributor) Distribute(
	ctx context.Context,
	originID string,
	baseAmount decimal.Decimal,
	commissionType string,
	applicationID *string,
) (int, error) {
	ruleMap, err := d.rules(ctx)
	if err != nil {
		return 0, err
	}

	origin, err := d.userRepo.GetByID(ctx, originID)
	if err != nil {
		return 0, fmt.Errorf("distribuição: origem %s: %w", originID, err)
	}
	if origin == nil {
		return 0, fmt.Errorf("distribuição: origem %s: %w", originID, domain.ErrUserNotFound)
	}

	maxDepth := len(entity.Roles)
	overrideType := commissionType + entity.OverrideSuffix
	created := 0

	current := origin
	for depth := 0; current.ParentID != nil; depth++ {
		if depth >= maxDepth {
			d.log.Error().
				Str("origin_id", originID).
				Int("max_depth", maxDepth).
				Msg("cadeia de parceiros excede a profundidade máxima; possível ciclo em parent_user_id")
			return created, fmt.Errorf("cadeia de parceiros de %s: %w", originID, domain.ErrDataIntegrity)
		}

		parent, err := d.userRepo.GetByID(ctx, *current.ParentID)
		if err != nil || parent == nil {
			// Pai inexistente é inconsistência pontual: registra e encerra a
			// subida sem derrubar a operação primária.
			d.log.Warn().
				Err(err).
				Str("parent_id", *current.ParentID).
				Str("origin_id", originID).
				Msg("ancestral não encontrado durante a distribuição")
			break
		}

		pct, ok := ruleMap[parent.Role]
		if !ok {
			d.log.Warn().
				Str("role", parent.Role).
				Str("beneficiary_id", parent.ID).
				Msg("papel sem payout rule; ancestral ignorado")
			current = parent
			continue
		}
		if pct.IsPositive() {
			amount := baseAmount.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
			now := time.Now()
			commission := &entity.Commission{
				ID:             uuid.New().String(),
				BeneficiaryID:  parent.ID,
				ApplicationID:  applicationID,
				CommissionType: overrideType,
				Amount:         amount,
				Percentage:     pct,
				Status:         entity.CommissionPending,
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := d.commissionRepo.Create(ctx, commission); err != nil {
				d.log.Error().
					Err(err).
					Str("beneficiary_id", parent.ID).
					Str("commission_type", overrideType).
					Msg("falha ao creditar ancestral; cadeia continua")
			} else {
				created++
				d.log.Info().
					Str("beneficiary_id", parent.ID).
					Str("role", parent.Role).
					Str("amount", amount.String()).
					Str("commission_type", overrideType).
					Msg("comissão de override creditada")
			}
		}
		current = parent
	}

	return created, nil
}
