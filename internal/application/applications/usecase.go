// Package applications contém a máquina de estados da solicitação de seguro
// fiança: criação, avaliação de crédito, mudança manual de status,
// reavaliação e emissão de apólice com cronograma.
package applications

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pagpro/fianca-api/internal/application/analysis"
	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/application/ports"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// relatedEntityApplication tipo usado nos metadados de documentos anexados.
const relatedEntityApplication = "rental_application"

// UseCase orquestra o ciclo de vida de solicitações.
type UseCase struct {
	applicationRepo repository.ApplicationRepository
	propertyRepo    repository.PropertyRepository
	userRepo        repository.UserRepository
	analysisRepo    repository.CreditAnalysisRepository
	policyRepo      repository.PolicyRepository
	scheduleRepo    repository.PaymentScheduleRepository
	documentRepo    repository.DocumentRepository
	engine          *analysis.Engine
	ruleBased       *analysis.RuleBased
	txRunner        IssuanceTxRunner
	distributor     Distributor
	log             *logger.Logger
}

// Distributor é o que o caso de uso precisa do distribuidor de comissões:
// injetado como interface para os testes usarem um fake.
type Distributor interface {
	Distribute(ctx context.Context, originID string, baseAmount decimal.Decimal, commissionType string, applicationID *string) (int, error)
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	applicationRepo repository.ApplicationRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	analysisRepo repository.CreditAnalysisRepository,
	policyRepo repository.PolicyRepository,
	scheduleRepo repository.PaymentScheduleRepository,
	documentRepo repository.DocumentRepository,
	engine *analysis.Engine,
	ruleBased *analysis.RuleBased,
	txRunner IssuanceTxRunner,
	distributor Distributor,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		userRepo:        userRepo,
		analysisRepo:    analysisRepo,
		policyRepo:      policyRepo,
		scheduleRepo:    scheduleRepo,
		documentRepo:    documentRepo,
		engine:          engine,
		ruleBased:       ruleBased,
		txRunner:        txRunner,
		distributor:     distributor,
		log:             log,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Criação e avaliação
// ──────────────────────────────────────────────────────────────────────────────

// CreateApplication valida o imóvel, resolve solicitante e corretor conforme
// o papel do ator, persiste a solicitação e roda a avaliação imediatamente.
func (uc *UseCase) CreateApplication(ctx context.Context, actor dto.Actor, in dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	property, err := uc.propertyRepo.GetByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("imóvel %s: %w", in.PropertyID, domain.ErrNotFound)
	}

	applicant, err := uc.resolveApplicant(ctx, actor, in)
	if err != nil {
		return nil, err
	}
	broker, err := uc.resolveBroker(ctx, actor, in)
	if err != nil {
		return nil, err
	}

	if in.MonthlyIncome.IsNegative() {
		return nil, fmt.Errorf("renda mensal negativa: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	app := &entity.RentalApplication{
		ID:                 uuid.New().String(),
		ApplicationNumber:  generateNumber("APP"),
		PropertyID:         property.ID,
		ApplicantID:        applicant.ID,
		Status:             entity.ApplicationSubmitted,
		RequestedRentValue: property.RentValue,
		MonthlyIncome:      in.MonthlyIncome,
		HasNegativeRecords: in.HasNegativeRecords,
		EmploymentStatus:   in.EmploymentStatus,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if broker != nil {
		app.BrokerID = &broker.ID
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("gravar solicitação: %w", err)
	}

	if err := uc.evaluate(ctx, app); err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, app)
}

// Reanalyze reexecuta a avaliação de uma solicitação existente. Permitido a
// quem pode ver a solicitação; repete o passo de scoring e pode mudar o
// status (e emitir apólice, se aprovar e ainda não houver).
func (uc *UseCase) Reanalyze(ctx context.Context, actor dto.Actor, id string) (*dto.ApplicationResponse, error) {
	app, err := uc.findAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := uc.evaluate(ctx, app); err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, app)
}

// evaluate roda o motor de scoring, substitui a análise anterior (no máximo
// uma corrente), aplica o status sugerido e emite a apólice quando aprova.
// A falha do oráculo nunca chega aqui: o motor já absorve com a fórmula.
func (uc *UseCase) evaluate(ctx context.Context, app *entity.RentalApplication) error {
	property, err := uc.propertyRepo.GetByID(ctx, app.PropertyID)
	if err != nil {
		return err
	}
	applicant, err := uc.userRepo.GetByID(ctx, app.ApplicantID)
	if err != nil {
		return err
	}
	documents, err := uc.documentRepo.ListByRelatedEntity(ctx, relatedEntityApplication, app.ID)
	if err != nil {
		// Documentos só enriquecem o prompt do oráculo; a avaliação segue sem eles.
		uc.log.Warn().Err(err).Str("application_id", app.ID).Msg("falha ao listar documentos")
		documents = nil
	}

	result := uc.engine.Evaluate(ctx, ports.AnalysisInput{
		Application: app,
		Property:    property,
		Applicant:   applicant,
		Documents:   documents,
	})

	// Substitui a análise anterior: apaga antes de gravar a nova.
	if err := uc.analysisRepo.DeleteByApplicationID(ctx, app.ID); err != nil {
		return fmt.Errorf("remover análise anterior: %w", err)
	}
	creditAnalysis := &entity.CreditAnalysis{
		ID:                     uuid.New().String(),
		ApplicationID:          app.ID,
		Score:                  result.Score,
		RiskLevel:              result.RiskLevel,
		MaximumCoverage:        result.MaximumCoverage,
		RecommendedMonthlyFee:  result.MonthlyFee,
		RecommendedAdhesionFee: result.AdhesionFee,
		Indicators:             result.Indicators,
		AnalystNotes:           fmt.Sprintf("Status sugerido: %s", result.SuggestedStatus),
		CreatedAt:              time.Now(),
	}
	if err := uc.analysisRepo.Create(ctx, creditAnalysis); err != nil {
		return fmt.Errorf("gravar análise: %w", err)
	}

	app.Status = result.SuggestedStatus
	app.UpdatedAt = time.Now()
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return fmt.Errorf("atualizar status da solicitação: %w", err)
	}

	if result.SuggestedStatus == entity.ApplicationApproved {
		if err := uc.issuePolicy(ctx, app, result.MaximumCoverage, result.MonthlyFee, result.AdhesionFee); err != nil {
			return err
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta
// ──────────────────────────────────────────────────────────────────────────────

// GetApplication devolve a visão completa da solicitação para o ator, se ele
// tiver acesso.
func (uc *UseCase) GetApplication(ctx context.Context, actor dto.Actor, id string) (*dto.ApplicationResponse, error) {
	app, err := uc.findAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(ctx, app)
}

// ListForActor lista as solicitações visíveis ao ator: ADMIN e DIRECTOR veem
// todas; imobiliária, as dos seus imóveis; franqueado, as das imobiliárias
// vinculadas; inquilino e corretor, as próprias.
func (uc *UseCase) ListForActor(ctx context.Context, actor dto.Actor) ([]*dto.ApplicationResponse, error) {
	var (
		apps []*entity.RentalApplication
		err  error
	)
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleDirector:
		apps, err = uc.applicationRepo.ListAll(ctx)
	case entity.RoleImobiliaria:
		apps, err = uc.applicationRepo.ListByPropertyOwner(ctx, actor.ID)
	case entity.RoleFranqueado:
		apps, err = uc.applicationRepo.ListByPropertyOwnerParent(ctx, actor.ID)
	case entity.RoleInquilino:
		apps, err = uc.applicationRepo.ListByApplicant(ctx, actor.ID)
	case entity.RoleCorretor:
		apps, err = uc.applicationRepo.ListByBroker(ctx, actor.ID)
	default:
		return []*dto.ApplicationResponse{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		resp, err := uc.buildResponse(ctx, app)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Mudanças manuais
// ──────────────────────────────────────────────────────────────────────────────

// UpdateStatus muda o status manualmente. Só ADMIN ou a imobiliária dona do
// imóvel podem; APPROVED sem apólice dispara a emissão igual à avaliação
// automática.
func (uc *UseCase) UpdateStatus(ctx context.Context, actor dto.Actor, id string, in dto.UpdateStatusRequest) (*dto.ApplicationResponse, error) {
	if !entity.IsValidApplicationStatus(in.Status) {
		return nil, fmt.Errorf("status %q: %w", in.Status, domain.ErrInvalidInput)
	}

	app, err := uc.findAuthorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authorizeMutation(ctx, actor, app); err != nil {
		return nil, err
	}

	app.Status = in.Status
	if in.Notes != "" {
		app.Notes = in.Notes
	}
	app.UpdatedAt = time.Now()
	if err := uc.applicationRepo.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("atualizar solicitação: %w", err)
	}

	if in.Status == entity.ApplicationApproved {
		coverage, monthly, adhesion, err := uc.issuanceAmounts(ctx, app)
		if err != nil {
			return nil, err
		}
		if err := uc.issuePolicy(ctx, app, coverage, monthly, adhesion); err != nil {
			return nil, err
		}
	}
	return uc.buildResponse(ctx, app)
}

// UpdatePaymentStatus progride o status de uma parcela. PAID carimba PaidAt e
// dispara a distribuição hierárquica de comissões; falha na distribuição não
// derruba a operação (fica no log).
func (uc *UseCase) UpdatePaymentStatus(ctx context.Context, actor dto.Actor, in dto.UpdatePaymentStatusRequest) (*dto.PaymentEntryDTO, error) {
	if !entity.IsValidPaymentStatus(in.Status) {
		return nil, fmt.Errorf("status de parcela %q: %w", in.Status, domain.ErrInvalidInput)
	}

	payment, err := uc.scheduleRepo.GetByID(ctx, in.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("parcela %s: %w", in.PaymentID, domain.ErrNotFound)
	}

	policy, err := uc.policyRepo.GetByID(ctx, payment.PolicyID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("apólice da parcela: %w", domain.ErrNotFound)
	}
	app, err := uc.applicationRepo.GetByID(ctx, policy.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("solicitação da apólice: %w", domain.ErrNotFound)
	}
	if err := uc.authorizeMutation(ctx, actor, app); err != nil {
		return nil, err
	}

	// Decide o tipo de comissão antes de qualquer mutação: notas novas do
	// chamador não podem apagar a marca de adesão.
	isAdhesion := payment.Notes == adhesionNote

	payment.Status = in.Status
	if in.PaymentReference != "" {
		payment.PaymentReference = in.PaymentReference
	}
	if in.Notes != "" {
		payment.Notes = in.Notes
	}
	payment.UpdatedAt = time.Now()
	if in.Status == entity.PaymentPaid {
		now := time.Now()
		payment.PaidAt = &now
	} else {
		payment.PaidAt = nil
	}

	if err := uc.scheduleRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("atualizar parcela: %w", err)
	}

	// Evento monetário: parcela paga credita a cadeia de parceiros do
	// solicitante. Sucesso parcial é aceitável; só registra.
	if in.Status == entity.PaymentPaid && uc.distributor != nil {
		commissionType := entity.CommissionMonthlyFee
		if isAdhesion {
			commissionType = entity.CommissionSetupFee
		}
		appID := app.ID
		if _, err := uc.distributor.Distribute(ctx, app.ApplicantID, payment.Amount, commissionType, &appID); err != nil {
			uc.log.Warn().
				Err(err).
				Str("payment_id", payment.ID).
				Str("application_id", app.ID).
				Msg("distribuição de comissões incompleta")
		}
	}

	out := paymentDTO(payment)
	return &out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorização e resolução de participantes
// ──────────────────────────────────────────────────────────────────────────────

// findAuthorized carrega a solicitação e verifica se o ator pode vê-la.
func (uc *UseCase) findAuthorized(ctx context.Context, actor dto.Actor, id string) (*entity.RentalApplication, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, fmt.Errorf("solicitação %s: %w", id, domain.ErrNotFound)
	}

	switch actor.Role {
	case entity.RoleAdmin, entity.RoleDirector:
		return app, nil
	case entity.RoleInquilino:
		if app.ApplicantID == actor.ID {
			return app, nil
		}
	case entity.RoleCorretor:
		if app.BrokerID != nil && *app.BrokerID == actor.ID {
			return app, nil
		}
	case entity.RoleImobiliaria:
		owner, err := uc.propertyOwnerID(ctx, app)
		if err != nil {
			return nil, err
		}
		if owner == actor.ID {
			return app, nil
		}
	case entity.RoleFranqueado:
		owner, err := uc.propertyOwner(ctx, app)
		if err != nil {
			return nil, err
		}
		if owner != nil && owner.ParentID != nil && *owner.ParentID == actor.ID {
			return app, nil
		}
	}
	return nil, domain.ErrForbidden
}

// authorizeMutation restringe mudanças de status (solicitação e parcelas) a
// ADMIN e à imobiliária dona do imóvel.
func (uc *UseCase) authorizeMutation(ctx context.Context, actor dto.Actor, app *entity.RentalApplication) error {
	if actor.Role == entity.RoleAdmin {
		return nil
	}
	if actor.Role == entity.RoleImobiliaria {
		owner, err := uc.propertyOwnerID(ctx, app)
		if err != nil {
			return err
		}
		if owner == actor.ID {
			return nil
		}
	}
	return domain.ErrForbidden
}

func (uc *UseCase) propertyOwner(ctx context.Context, app *entity.RentalApplication) (*entity.User, error) {
	ownerID, err := uc.propertyOwnerID(ctx, app)
	if err != nil {
		return nil, err
	}
	if ownerID == "" {
		return nil, nil
	}
	return uc.userRepo.GetByID(ctx, ownerID)
}

func (uc *UseCase) propertyOwnerID(ctx context.Context, app *entity.RentalApplication) (string, error) {
	property, err := uc.propertyRepo.GetByID(ctx, app.PropertyID)
	if err != nil {
		return "", err
	}
	if property == nil {
		return "", nil
	}
	return property.OwnerID, nil
}

// resolveApplicant: inquilino cria para si mesmo; os demais papéis indicam o
// inquilino solicitante explicitamente.
func (uc *UseCase) resolveApplicant(ctx context.Context, actor dto.Actor, in dto.CreateApplicationRequest) (*entity.User, error) {
	if actor.Role == entity.RoleInquilino {
		user, err := uc.userRepo.GetByID(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		return user, nil
	}

	if in.ApplicantID == "" {
		return nil, fmt.Errorf("é necessário informar o inquilino solicitante: %w", domain.ErrInvalidInput)
	}
	applicant, err := uc.userRepo.GetByID(ctx, in.ApplicantID)
	if err != nil {
		return nil, err
	}
	if applicant == nil || applicant.Role != entity.RoleInquilino {
		return nil, fmt.Errorf("inquilino informado é inválido: %w", domain.ErrInvalidInput)
	}
	return applicant, nil
}

// resolveBroker: corretor cria vinculando a si mesmo; outros papéis podem
// indicar um corretor opcionalmente.
func (uc *UseCase) resolveBroker(ctx context.Context, actor dto.Actor, in dto.CreateApplicationRequest) (*entity.User, error) {
	if actor.Role == entity.RoleCorretor {
		return uc.userRepo.GetByID(ctx, actor.ID)
	}
	if in.BrokerID == "" {
		return nil, nil
	}
	broker, err := uc.userRepo.GetByID(ctx, in.BrokerID)
	if err != nil {
		return nil, err
	}
	if broker == nil || broker.Role != entity.RoleCorretor {
		return nil, fmt.Errorf("corretor informado é inválido: %w", domain.ErrInvalidInput)
	}
	return broker, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Montagem da resposta
// ──────────────────────────────────────────────────────────────────────────────

func (uc *UseCase) buildResponse(ctx context.Context, app *entity.RentalApplication) (*dto.ApplicationResponse, error) {
	resp := &dto.ApplicationResponse{
		ID:                 app.ID,
		ApplicationNumber:  app.ApplicationNumber,
		PropertyID:         app.PropertyID,
		ApplicantID:        app.ApplicantID,
		BrokerID:           app.BrokerID,
		Status:             app.Status,
		RequestedRentValue: app.RequestedRentValue,
		MonthlyIncome:      app.MonthlyIncome,
		HasNegativeRecords: app.HasNegativeRecords,
		EmploymentStatus:   app.EmploymentStatus,
		Notes:              app.Notes,
		CreatedAt:          app.CreatedAt,
	}

	if creditAnalysis, err := uc.analysisRepo.GetByApplicationID(ctx, app.ID); err == nil && creditAnalysis != nil {
		resp.CreditAnalysis = &dto.CreditAnalysisDTO{
			ID:                     creditAnalysis.ID,
			Score:                  creditAnalysis.Score,
			RiskLevel:              creditAnalysis.RiskLevel,
			MaximumCoverage:        creditAnalysis.MaximumCoverage,
			RecommendedMonthlyFee:  creditAnalysis.RecommendedMonthlyFee,
			RecommendedAdhesionFee: creditAnalysis.RecommendedAdhesionFee,
			Indicators:             creditAnalysis.Indicators,
			AnalystNotes:           creditAnalysis.AnalystNotes,
		}
	}

	policy, err := uc.policyRepo.GetByApplicationID(ctx, app.ID)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		policyDTO := &dto.PolicyDTO{
			ID:             policy.ID,
			PolicyNumber:   policy.PolicyNumber,
			Status:         policy.Status,
			CoverageAmount: policy.CoverageAmount,
			MonthlyPremium: policy.MonthlyPremium,
			AdhesionFee:    policy.AdhesionFee,
			StartDate:      policy.StartDate,
			EndDate:        policy.EndDate,
		}
		entries, err := uc.scheduleRepo.ListByPolicyID(ctx, policy.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			policyDTO.Payments = append(policyDTO.Payments, paymentDTO(e))
		}
		resp.Policy = policyDTO
	}
	return resp, nil
}

func paymentDTO(e *entity.PaymentScheduleEntry) dto.PaymentEntryDTO {
	return dto.PaymentEntryDTO{
		ID:               e.ID,
		DueDate:          e.DueDate,
		Amount:           e.Amount,
		Status:           e.Status,
		PaymentMethod:    e.PaymentMethod,
		PaidAt:           e.PaidAt,
		PaymentReference: e.PaymentReference,
		Notes:            e.Notes,
	}
}

// generateNumber gera identificadores legíveis tipo APP-1712345678901-0042.
func generateNumber(prefix string) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, time.Now().UnixMilli(), rand.IntN(10000))
}
