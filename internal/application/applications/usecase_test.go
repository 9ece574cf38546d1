package applications

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagpro/fianca-api/internal/application/analysis"
	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
	"github.com/pagpro/fianca-api/internal/domain/scoring"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeApplicationRepo struct {
	apps map[string]*entity.RentalApplication
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]*entity.RentalApplication{}}
}

func (r *fakeApplicationRepo) Create(_ context.Context, app *entity.RentalApplication) error {
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) GetByID(_ context.Context, id string) (*entity.RentalApplication, error) {
	app, ok := r.apps[id]
	if !ok {
		return nil, nil
	}
	cp := *app
	return &cp, nil
}

func (r *fakeApplicationRepo) Update(_ context.Context, app *entity.RentalApplication) error {
	cp := *app
	r.apps[app.ID] = &cp
	return nil
}

func (r *fakeApplicationRepo) ListAll(_ context.Context) ([]*entity.RentalApplication, error) {
	out := []*entity.RentalApplication{}
	for _, app := range r.apps {
		cp := *app
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]*entity.RentalApplication, error) {
	out := []*entity.RentalApplication{}
	for _, app := range r.apps {
		if app.ApplicantID == applicantID {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByBroker(_ context.Context, brokerID string) ([]*entity.RentalApplication, error) {
	out := []*entity.RentalApplication{}
	for _, app := range r.apps {
		if app.BrokerID != nil && *app.BrokerID == brokerID {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListByPropertyOwner(_ context.Context, _ string) ([]*entity.RentalApplication, error) {
	return []*entity.RentalApplication{}, nil
}

func (r *fakeApplicationRepo) ListByPropertyOwnerParent(_ context.Context, _ string) ([]*entity.RentalApplication, error) {
	return []*entity.RentalApplication{}, nil
}

type fakePropertyRepo struct {
	props map[string]*entity.Property
}

func (r *fakePropertyRepo) Create(_ context.Context, p *entity.Property) error {
	r.props[p.ID] = p
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id string) (*entity.Property, error) {
	return r.props[id], nil
}

func (r *fakePropertyRepo) ListByOwner(_ context.Context, _ string) ([]*entity.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) List(_ context.Context) ([]*entity.Property, error) { return nil, nil }

type fakeUserDirectory struct {
	users map[string]*entity.User
}

func (r *fakeUserDirectory) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserDirectory) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserDirectory) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserDirectory) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

type fakeAnalysisRepo struct {
	byApp   map[string]*entity.CreditAnalysis
	creates int
	deletes int
}

func (r *fakeAnalysisRepo) Create(_ context.Context, a *entity.CreditAnalysis) error {
	r.creates++
	r.byApp[a.ApplicationID] = a
	return nil
}

func (r *fakeAnalysisRepo) GetByApplicationID(_ context.Context, applicationID string) (*entity.CreditAnalysis, error) {
	return r.byApp[applicationID], nil
}

func (r *fakeAnalysisRepo) DeleteByApplicationID(_ context.Context, applicationID string) error {
	r.deletes++
	delete(r.byApp, applicationID)
	return nil
}

type fakePolicyRepo struct {
	byApp       map[string]*entity.InsurancePolicy
	forceRace   bool // simula perder a corrida: Create devolve conflito
	createCalls int
}

func (r *fakePolicyRepo) Create(_ context.Context, p *entity.InsurancePolicy) error {
	r.createCalls++
	if r.forceRace {
		return domain.ErrConflict
	}
	if _, ok := r.byApp[p.ApplicationID]; ok {
		return domain.ErrConflict
	}
	r.byApp[p.ApplicationID] = p
	return nil
}

func (r *fakePolicyRepo) GetByID(_ context.Context, id string) (*entity.InsurancePolicy, error) {
	for _, p := range r.byApp {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePolicyRepo) GetByApplicationID(_ context.Context, applicationID string) (*entity.InsurancePolicy, error) {
	return r.byApp[applicationID], nil
}

type fakeScheduleRepo struct {
	entries    map[string]*entity.PaymentScheduleEntry
	batchCalls int
}

func (r *fakeScheduleRepo) CreateBatch(_ context.Context, entries []*entity.PaymentScheduleEntry) error {
	r.batchCalls++
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return nil
}

func (r *fakeScheduleRepo) GetByID(_ context.Context, id string) (*entity.PaymentScheduleEntry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeScheduleRepo) Update(_ context.Context, e *entity.PaymentScheduleEntry) error {
	cp := *e
	r.entries[e.ID] = &cp
	return nil
}

func (r *fakeScheduleRepo) ListByPolicyID(_ context.Context, policyID string) ([]*entity.PaymentScheduleEntry, error) {
	out := []*entity.PaymentScheduleEntry{}
	for _, e := range r.entries {
		if e.PolicyID == policyID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeDocumentRepo struct{}

func (fakeDocumentRepo) ListByRelatedEntity(_ context.Context, _, _ string) ([]*entity.Document, error) {
	return nil, nil
}

// fakeTxRunner executa a função diretamente contra os fakes, sem transação.
type fakeTxRunner struct {
	policyRepo   repository.PolicyRepository
	scheduleRepo repository.PaymentScheduleRepository
}

func (t *fakeTxRunner) RunIssuance(_ context.Context, fn func(
	policyRepo repository.PolicyRepository,
	scheduleRepo repository.PaymentScheduleRepository,
) error) error {
	return fn(t.policyRepo, t.scheduleRepo)
}

type distributorCall struct {
	originID       string
	baseAmount     decimal.Decimal
	commissionType string
}

type fakeDistributor struct {
	calls []distributorCall
	err   error
}

func (d *fakeDistributor) Distribute(_ context.Context, originID string, baseAmount decimal.Decimal, commissionType string, _ *string) (int, error) {
	d.calls = append(d.calls, distributorCall{originID: originID, baseAmount: baseAmount, commissionType: commissionType})
	if d.err != nil {
		return 0, d.err
	}
	return len(d.calls), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc          *UseCase
	apps        *fakeApplicationRepo
	analyses    *fakeAnalysisRepo
	policies    *fakePolicyRepo
	schedule    *fakeScheduleRepo
	distributor *fakeDistributor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &fakeUserDirectory{users: map[string]*entity.User{
		"tenant-1":  {ID: "tenant-1", Role: entity.RoleInquilino, FullName: "Inquilino Um"},
		"tenant-2":  {ID: "tenant-2", Role: entity.RoleInquilino, FullName: "Inquilino Dois"},
		"broker-1":  {ID: "broker-1", Role: entity.RoleCorretor, FullName: "Corretor Um"},
		"agency-1":  {ID: "agency-1", Role: entity.RoleImobiliaria, FullName: "Imobiliária Um"},
		"admin-1":   {ID: "admin-1", Role: entity.RoleAdmin, FullName: "Admin"},
		"tenant-no": {ID: "tenant-no", Role: entity.RoleInquilino, FullName: "Sem Vínculo"},
	}}
	props := &fakePropertyRepo{props: map[string]*entity.Property{
		"prop-1": {ID: "prop-1", OwnerID: "agency-1", RentValue: decimal.NewFromInt(1000)},
	}}
	apps := newFakeApplicationRepo()
	analyses := &fakeAnalysisRepo{byApp: map[string]*entity.CreditAnalysis{}}
	policies := &fakePolicyRepo{byApp: map[string]*entity.InsurancePolicy{}}
	schedule := &fakeScheduleRepo{entries: map[string]*entity.PaymentScheduleEntry{}}
	distributor := &fakeDistributor{}

	ruleBased := analysis.NewRuleBased(scoring.DefaultParams())
	engine := analysis.NewEngine(nil, ruleBased, logger.Nop())
	txRunner := &fakeTxRunner{policyRepo: policies, scheduleRepo: schedule}

	uc := NewUseCase(
		apps, props, users, analyses, policies, schedule, fakeDocumentRepo{},
		engine, ruleBased, txRunner, distributor, logger.Nop(),
	)
	return &fixture{uc: uc, apps: apps, analyses: analyses, policies: policies, schedule: schedule, distributor: distributor}
}

func (f *fixture) admin() dto.Actor  { return dto.Actor{ID: "admin-1", Role: entity.RoleAdmin} }
func (f *fixture) tenant() dto.Actor { return dto.Actor{ID: "tenant-1", Role: entity.RoleInquilino} }

func (f *fixture) createAsTenant(t *testing.T, income int64, negative bool) *dto.ApplicationResponse {
	t.Helper()
	resp, err := f.uc.CreateApplication(context.Background(), f.tenant(), dto.CreateApplicationRequest{
		PropertyID:         "prop-1",
		MonthlyIncome:      decimal.NewFromInt(income),
		HasNegativeRecords: negative,
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação e avaliação
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateApplication_ApprovedIssuesPolicyWithSchedule(t *testing.T) {
	f := newFixture(t)

	// aluguel 1000, renda 6000 -> score 75, aprovado no limiar
	resp := f.createAsTenant(t, 6000, false)

	assert.Equal(t, entity.ApplicationApproved, resp.Status)
	require.NotNil(t, resp.CreditAnalysis)
	assert.Equal(t, 75, resp.CreditAnalysis.Score)
	assert.Equal(t, entity.RiskLow, resp.CreditAnalysis.RiskLevel)

	require.NotNil(t, resp.Policy)
	assert.Equal(t, entity.PolicyActive, resp.Policy.Status)
	assert.True(t, resp.Policy.CoverageAmount.Equal(decimal.NewFromInt(3000)),
		"cobertura = aluguel x 3, obtido %s", resp.Policy.CoverageAmount)
	assert.True(t, resp.Policy.MonthlyPremium.Equal(decimal.NewFromInt(150)))
	assert.True(t, resp.Policy.AdhesionFee.Equal(decimal.NewFromInt(1000)))

	require.Len(t, resp.Policy.Payments, 13)
	var adhesion, monthly int
	for _, p := range resp.Policy.Payments {
		assert.Equal(t, entity.PaymentPending, p.Status)
		assert.Equal(t, entity.PaymentMethodBoleto, p.PaymentMethod)
		if p.Notes == adhesionNote {
			adhesion++
			assert.True(t, p.Amount.Equal(decimal.NewFromInt(1000)))
		} else {
			monthly++
			assert.True(t, p.Amount.Equal(decimal.NewFromInt(150)))
		}
	}
	assert.Equal(t, 1, adhesion)
	assert.Equal(t, 12, monthly)
}

func TestCreateApplication_ScheduleDueDatesAreMonthly(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 6000, false)
	require.NotNil(t, resp.Policy)

	start := resp.Policy.StartDate
	assert.Equal(t, start.AddDate(0, 12, 0), resp.Policy.EndDate)

	seen := map[string]bool{}
	for _, p := range resp.Policy.Payments {
		seen[p.DueDate.Format("2006-01-02")] = true
	}
	// adesão hoje + 12 vencimentos mensais distintos
	for i := 0; i <= 12; i++ {
		d := start.AddDate(0, i, 0).Format("2006-01-02")
		assert.True(t, seen[d], "vencimento esperado em %s", d)
	}
}

func TestCreateApplication_MidScoreStaysInAnalysis(t *testing.T) {
	f := newFixture(t)

	// aluguel 1000, renda 4000 -> score 70, análise manual
	resp := f.createAsTenant(t, 4000, false)

	assert.Equal(t, entity.ApplicationInAnalysis, resp.Status)
	require.NotNil(t, resp.CreditAnalysis)
	assert.Equal(t, 70, resp.CreditAnalysis.Score)
	assert.Nil(t, resp.Policy, "solicitação em análise não emite apólice")
}

func TestCreateApplication_RejectedDoesNotIssuePolicy(t *testing.T) {
	f := newFixture(t)

	// sem renda e negativado -> score mínimo, rejeição
	resp := f.createAsTenant(t, 0, true)

	assert.Equal(t, entity.ApplicationRejected, resp.Status)
	require.NotNil(t, resp.CreditAnalysis)
	assert.Equal(t, 10, resp.CreditAnalysis.Score)
	assert.Equal(t, entity.RiskHigh, resp.CreditAnalysis.RiskLevel)
	assert.Nil(t, resp.Policy)
	assert.Empty(t, f.schedule.entries)
}

func TestCreateApplication_NegativeIncomeRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateApplication(context.Background(), f.tenant(), dto.CreateApplicationRequest{
		PropertyID:    "prop-1",
		MonthlyIncome: decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateApplication_UnknownPropertyRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateApplication(context.Background(), f.tenant(), dto.CreateApplicationRequest{
		PropertyID:    "nao-existe",
		MonthlyIncome: decimal.NewFromInt(5000),
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateApplication_AgencyMustNameApplicant(t *testing.T) {
	f := newFixture(t)
	agency := dto.Actor{ID: "agency-1", Role: entity.RoleImobiliaria}

	_, err := f.uc.CreateApplication(context.Background(), agency, dto.CreateApplicationRequest{
		PropertyID:    "prop-1",
		MonthlyIncome: decimal.NewFromInt(5000),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	resp, err := f.uc.CreateApplication(context.Background(), agency, dto.CreateApplicationRequest{
		PropertyID:    "prop-1",
		ApplicantID:   "tenant-2",
		MonthlyIncome: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, "tenant-2", resp.ApplicantID)
}

func TestCreateApplication_BrokerBindsItself(t *testing.T) {
	f := newFixture(t)
	broker := dto.Actor{ID: "broker-1", Role: entity.RoleCorretor}

	resp, err := f.uc.CreateApplication(context.Background(), broker, dto.CreateApplicationRequest{
		PropertyID:    "prop-1",
		ApplicantID:   "tenant-1",
		MonthlyIncome: decimal.NewFromInt(4000),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.BrokerID)
	assert.Equal(t, "broker-1", *resp.BrokerID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reavaliação e idempotência da emissão
// ──────────────────────────────────────────────────────────────────────────────

func TestReanalyze_ReplacesAnalysisKeepsSinglePolicy(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 6000, false)
	firstAnalysisID := resp.CreditAnalysis.ID
	firstPolicyID := resp.Policy.ID

	again, err := f.uc.Reanalyze(context.Background(), f.admin(), resp.ID)
	require.NoError(t, err)

	// nova análise substitui a anterior, nunca acumula
	require.NotNil(t, again.CreditAnalysis)
	assert.NotEqual(t, firstAnalysisID, again.CreditAnalysis.ID)
	assert.Equal(t, 2, f.analyses.creates)
	assert.Equal(t, 2, f.analyses.deletes)
	assert.Len(t, f.analyses.byApp, 1)

	// a apólice existente é reutilizada, sem segunda emissão
	require.NotNil(t, again.Policy)
	assert.Equal(t, firstPolicyID, again.Policy.ID)
	assert.Equal(t, 1, f.schedule.batchCalls)
	assert.Len(t, f.schedule.entries, 13)
}

func TestIssuePolicy_ConcurrentConflictIsNoOp(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 4000, false) // em análise, sem apólice

	// outra avaliação “venceu a corrida”: o Create passa a conflitar
	f.policies.forceRace = true

	app, err := f.apps.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)

	err = f.uc.issuePolicy(context.Background(), app,
		decimal.NewFromInt(3000), decimal.NewFromInt(150), decimal.NewFromInt(1000))
	require.NoError(t, err, "conflito de emissão concorrente é tratado como no-op")
	assert.Empty(t, f.schedule.entries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mudança manual de status
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_ManualApprovalIssuesPolicyFromStoredAnalysis(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 4000, false)
	require.Nil(t, resp.Policy)

	updated, err := f.uc.UpdateStatus(context.Background(), f.admin(), resp.ID, dto.UpdateStatusRequest{
		Status: entity.ApplicationApproved,
		Notes:  "aprovado após análise manual",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ApplicationApproved, updated.Status)
	require.NotNil(t, updated.Policy)
	// valores vêm da análise persistida, não recalculados
	assert.True(t, updated.Policy.CoverageAmount.Equal(resp.CreditAnalysis.MaximumCoverage))
	assert.True(t, updated.Policy.MonthlyPremium.Equal(resp.CreditAnalysis.RecommendedMonthlyFee))
	require.Len(t, updated.Policy.Payments, 13)
}

func TestUpdateStatus_InvalidLiteralRejected(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 4000, false)

	_, err := f.uc.UpdateStatus(context.Background(), f.admin(), resp.ID, dto.UpdateStatusRequest{Status: "CANCELADO"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_TenantCannotMutate(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 4000, false)

	_, err := f.uc.UpdateStatus(context.Background(), f.tenant(), resp.ID, dto.UpdateStatusRequest{
		Status: entity.ApplicationApproved,
	})
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_OwningAgencyCanMutate(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 4000, false)
	agency := dto.Actor{ID: "agency-1", Role: entity.RoleImobiliaria}

	updated, err := f.uc.UpdateStatus(context.Background(), agency, resp.ID, dto.UpdateStatusRequest{
		Status: entity.ApplicationRejected,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, updated.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Visibilidade
// ──────────────────────────────────────────────────────────────────────────────

func TestGetApplication_OtherTenantForbidden(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 4000, false)

	_, err := f.uc.GetApplication(context.Background(), dto.Actor{ID: "tenant-no", Role: entity.RoleInquilino}, resp.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	got, err := f.uc.GetApplication(context.Background(), f.tenant(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}

func TestListForActor_TenantSeesOnlyOwn(t *testing.T) {
	f := newFixture(t)
	f.createAsTenant(t, 4000, false)

	other, err := f.uc.CreateApplication(context.Background(), f.admin(), dto.CreateApplicationRequest{
		PropertyID:    "prop-1",
		ApplicantID:   "tenant-2",
		MonthlyIncome: decimal.NewFromInt(5000),
	})
	require.NoError(t, err)

	mine, err := f.uc.ListForActor(context.Background(), f.tenant())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "tenant-1", mine[0].ApplicantID)

	all, err := f.uc.ListForActor(context.Background(), f.admin())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_ = other
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagamento de parcelas e gatilho de comissões
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdatePaymentStatus_AdhesionPaidTriggersSetupFee(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 6000, false)
	require.NotNil(t, resp.Policy)

	var adhesionID string
	for _, p := range resp.Policy.Payments {
		if p.Notes == adhesionNote {
			adhesionID = p.ID
		}
	}
	require.NotEmpty(t, adhesionID)

	paid, err := f.uc.UpdatePaymentStatus(context.Background(), f.admin(), dto.UpdatePaymentStatusRequest{
		PaymentID:        adhesionID,
		Status:           entity.PaymentPaid,
		PaymentReference: "boleto-123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, "boleto-123", paid.PaymentReference)

	require.Len(t, f.distributor.calls, 1)
	call := f.distributor.calls[0]
	assert.Equal(t, "tenant-1", call.originID, "a distribuição parte do inquilino solicitante")
	assert.Equal(t, entity.CommissionSetupFee, call.commissionType)
	assert.True(t, call.baseAmount.Equal(decimal.NewFromInt(1000)))
}

func TestUpdatePaymentStatus_MonthlyPaidTriggersMonthlyFee(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 6000, false)

	var monthlyID string
	for _, p := range resp.Policy.Payments {
		if p.Notes != adhesionNote {
			monthlyID = p.ID
			break
		}
	}
	require.NotEmpty(t, monthlyID)

	_, err := f.uc.UpdatePaymentStatus(context.Background(), f.admin(), dto.UpdatePaymentStatusRequest{
		PaymentID: monthlyID,
		Status:    entity.PaymentPaid,
	})
	require.NoError(t, err)

	require.Len(t, f.distributor.calls, 1)
	assert.Equal(t, entity.CommissionMonthlyFee, f.distributor.calls[0].commissionType)
	assert.True(t, f.distributor.calls[0].baseAmount.Equal(decimal.NewFromInt(150)))
}

func TestUpdatePaymentStatus_OverdueDoesNotDistribute(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 6000, false)

	_, err := f.uc.UpdatePaymentStatus(context.Background(), f.admin(), dto.UpdatePaymentStatusRequest{
		PaymentID: resp.Policy.Payments[0].ID,
		Status:    entity.PaymentOverdue,
	})
	require.NoError(t, err)
	assert.Empty(t, f.distributor.calls)
}

func TestUpdatePaymentStatus_DistributionFailureDoesNotFailPayment(t *testing.T) {
	f := newFixture(t)
	resp := f.createAsTenant(t, 6000, false)
	f.distributor.err = errors.New("parceiro sem regra de repasse")

	paid, err := f.uc.UpdatePaymentStatus(context.Background(), f.admin(), dto.UpdatePaymentStatusRequest{
		PaymentID: resp.Policy.Payments[0].ID,
		Status:    entity.PaymentPaid,
	})
	require.NoError(t, err, "falha na distribuição fica no log, não derruba o pagamento")
	assert.Equal(t, entity.PaymentPaid, paid.Status)
}

func TestUpdatePaymentStatus_UnknownPayment(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdatePaymentStatus(context.Background(), f.admin(), dto.UpdatePaymentStatusRequest{
		PaymentID: "nao-existe",
		Status:    entity.PaymentPaid,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
