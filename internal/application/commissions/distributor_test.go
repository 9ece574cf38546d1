package commissions_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagpro/fianca-api/internal/application/commissions"
	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

type fakePayoutRepo struct {
	rules     map[string]*entity.PayoutRule
	listCalls int
}

func (f *fakePayoutRepo) List(_ context.Context) ([]*entity.PayoutRule, error) {
	f.listCalls++
	out := make([]*entity.PayoutRule, 0, len(f.rules))
	for _, r := range f.rules {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayoutRepo) GetByRole(_ context.Context, role string) (*entity.PayoutRule, error) {
	return f.rules[role], nil
}

func (f *fakePayoutRepo) Upsert(_ context.Context, rule *entity.PayoutRule) error {
	f.rules[rule.Role] = rule
	return nil
}

type fakeCommissionRepo struct {
	commissions []*entity.Commission
	failFor     string // BeneficiaryID que deve falhar no Create
}

func (f *fakeCommissionRepo) Create(_ context.Context, c *entity.Commission) error {
	if f.failFor != "" && c.BeneficiaryID == f.failFor {
		return errors.New("insert falhou")
	}
	f.commissions = append(f.commissions, c)
	return nil
}

func (f *fakeCommissionRepo) GetByID(_ context.Context, id string) (*entity.Commission, error) {
	for _, c := range f.commissions {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCommissionRepo) Update(_ context.Context, c *entity.Commission) error {
	for i, existing := range f.commissions {
		if existing.ID == c.ID {
			f.commissions[i] = c
		}
	}
	return nil
}

func (f *fakeCommissionRepo) ListAll(_ context.Context) ([]*entity.Commission, error) {
	return f.commissions, nil
}

func (f *fakeCommissionRepo) ListByBeneficiary(_ context.Context, id string) ([]*entity.Commission, error) {
	var out []*entity.Commission
	for _, c := range f.commissions {
		if c.BeneficiaryID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Montagem
// ──────────────────────────────────────────────────────────────────────────────

func ptr(s string) *string { return &s }

// chainFixture monta a cadeia INQUILINO→CORRETOR→IMOBILIARIA→FRANQUEADO com
// as regras padrão de repasse já semeadas.
func chainFixture(t *testing.T) (*commissions.Distributor, *fakeUserRepo, *fakePayoutRepo, *fakeCommissionRepo) {
	t.Helper()
	users := &fakeUserRepo{users: map[string]*entity.User{
		"franqueado":  {ID: "franqueado", Role: entity.RoleFranqueado},
		"imobiliaria": {ID: "imobiliaria", Role: entity.RoleImobiliaria, ParentID: ptr("franqueado")},
		"corretor":    {ID: "corretor", Role: entity.RoleCorretor, ParentID: ptr("imobiliaria")},
		"inquilino":   {ID: "inquilino", Role: entity.RoleInquilino, ParentID: ptr("corretor")},
	}}
	payouts := &fakePayoutRepo{rules: map[string]*entity.PayoutRule{}}
	comms := &fakeCommissionRepo{}

	d := commissions.NewDistributor(users, payouts, comms, logger.Nop())
	require.NoError(t, d.SeedDefaults(context.Background()))
	return d, users, payouts, comms
}

func findByBeneficiary(list []*entity.Commission, id string) *entity.Commission {
	for _, c := range list {
		if c.BeneficiaryID == id {
			return c
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Testes
// ──────────────────────────────────────────────────────────────────────────────

// Cadeia de 4 níveis, base 1000, regras padrão: exatamente 3 overrides:
// corretor 50 (5%), imobiliária 100 (10%), franqueado 150 (15%). A origem
// não é creditada e a raiz sem pai encerra a subida.
func TestDistribute_Cadeia4Niveis(t *testing.T) {
	d, _, _, comms := chainFixture(t)

	created, err := d.Distribute(context.Background(), "inquilino",
		decimal.NewFromInt(1000), entity.CommissionSetupFee, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, created)
	require.Len(t, comms.commissions, 3)

	corretor := findByBeneficiary(comms.commissions, "corretor")
	require.NotNil(t, corretor)
	assert.True(t, corretor.Amount.Equal(decimal.NewFromInt(50)), "corretor recebe 5%% = 50, obteve %s", corretor.Amount)

	imob := findByBeneficiary(comms.commissions, "imobiliaria")
	require.NotNil(t, imob)
	assert.True(t, imob.Amount.Equal(decimal.NewFromInt(100)), "imobiliária recebe 10%% = 100")

	franq := findByBeneficiary(comms.commissions, "franqueado")
	require.NotNil(t, franq)
	assert.True(t, franq.Amount.Equal(decimal.NewFromInt(150)), "franqueado recebe 15%% = 150")

	assert.Nil(t, findByBeneficiary(comms.commissions, "inquilino"), "a origem não recebe comissão")

	for _, c := range comms.commissions {
		assert.Equal(t, entity.CommissionSetupFee+entity.OverrideSuffix, c.CommissionType)
		assert.Equal(t, entity.CommissionPending, c.Status)
	}
}

// Origem sem pai: nenhuma comissão, nenhum erro.
func TestDistribute_RaizSemPai(t *testing.T) {
	d, _, _, comms := chainFixture(t)

	created, err := d.Distribute(context.Background(), "franqueado",
		decimal.NewFromInt(1000), entity.CommissionMonthlyFee, nil)

	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Empty(t, comms.commissions)
}

// Grafo cíclico (dado malformado): o passeio é limitado e devolve erro de
// integridade em vez de laço infinito. As comissões creditadas antes do
// estouro permanecem.
func TestDistribute_CicloDetectado(t *testing.T) {
	d, users, _, _ := chainFixture(t)
	// franqueado passa a apontar para o corretor: ciclo de 3 nós
	users.users["franqueado"].ParentID = ptr("corretor")

	created, err := d.Distribute(context.Background(), "inquilino",
		decimal.NewFromInt(1000), entity.CommissionSetupFee, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	assert.Greater(t, created, 0, "ancestrais creditados antes do estouro permanecem")
}

// Atualizar uma regra invalida o cache: a distribuição seguinte usa o
// percentual novo.
func TestDistribute_CacheInvalidadoAposAtualizacao(t *testing.T) {
	d, _, payouts, comms := chainFixture(t)
	ctx := context.Background()

	_, err := d.Distribute(ctx, "inquilino", decimal.NewFromInt(1000), entity.CommissionSetupFee, nil)
	require.NoError(t, err)
	listsBefore := payouts.listCalls

	// segunda distribuição sem mudança: cache quente, sem novo List
	_, err = d.Distribute(ctx, "inquilino", decimal.NewFromInt(1000), entity.CommissionSetupFee, nil)
	require.NoError(t, err)
	assert.Equal(t, listsBefore, payouts.listCalls, "cache quente não deve recarregar")

	// mudança de regra via caso de uso administrativo
	uc := commissions.NewUseCase(comms, nil, payouts, d)
	_, err = uc.SetPayoutRule(ctx, dto.UpdatePayoutRuleRequest{
		Role:       entity.RoleCorretor,
		Percentage: decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	comms.commissions = nil
	_, err = d.Distribute(ctx, "inquilino", decimal.NewFromInt(1000), entity.CommissionSetupFee, nil)
	require.NoError(t, err)
	assert.Greater(t, payouts.listCalls, listsBefore, "cache deve ser recarregado após atualização")

	corretor := findByBeneficiary(comms.commissions, "corretor")
	require.NotNil(t, corretor)
	assert.True(t, corretor.Amount.Equal(decimal.NewFromInt(200)), "novo percentual de 20%% deve valer")
}

// Falha ao creditar um ancestral não derruba a cadeia: os demais continuam
// sendo creditados.
func TestDistribute_SucessoParcial(t *testing.T) {
	d, _, _, comms := chainFixture(t)
	comms.failFor = "imobiliaria"

	created, err := d.Distribute(context.Background(), "inquilino",
		decimal.NewFromInt(1000), entity.CommissionSetupFee, nil)

	require.NoError(t, err, "falha pontual não é fatal para a distribuição")
	assert.Equal(t, 2, created)
	assert.NotNil(t, findByBeneficiary(comms.commissions, "corretor"))
	assert.NotNil(t, findByBeneficiary(comms.commissions, "franqueado"))
	assert.Nil(t, findByBeneficiary(comms.commissions, "imobiliaria"))
}

// SeedDefaults não sobrescreve regras existentes.
func TestSeedDefaults_NaoSobrescreve(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*entity.User{}}
	payouts := &fakePayoutRepo{rules: map[string]*entity.PayoutRule{
		entity.RoleCorretor: {
			ID:         "existente",
			Role:       entity.RoleCorretor,
			Percentage: decimal.NewFromInt(7),
			CreatedAt:  time.Now(),
		},
	}}
	d := commissions.NewDistributor(users, payouts, &fakeCommissionRepo{}, logger.Nop())

	require.NoError(t, d.SeedDefaults(context.Background()))

	assert.True(t, payouts.rules[entity.RoleCorretor].Percentage.Equal(decimal.NewFromInt(7)),
		"regra existente não deve ser sobrescrita pelo seed")
	assert.NotNil(t, payouts.rules[entity.RoleFranqueado], "papéis ausentes devem ser semeados")
	assert.True(t, payouts.rules[entity.RoleFranqueado].Percentage.Equal(decimal.NewFromInt(15)))
	assert.True(t, payouts.rules[entity.RoleDirector].Percentage.Equal(decimal.NewFromInt(10)))
}
