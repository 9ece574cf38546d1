package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

// ApplicationRepo implementação do porto ApplicationRepository sobre
// PostgreSQL. Os List* espelham a visibilidade por papel; o recorte do
// franqueado faz junção via parent_user_id do dono do imóvel.
type ApplicationRepo struct {
	q Querier
}

// NewApplicationRepository constrói o adaptador de persistência de solicitações.
func NewApplicationRepository(q Querier) *ApplicationRepo {
	return &ApplicationRepo{q: q}
}

const applicationColumns = `a.id, a.application_number, a.property_id, a.applicant_id, a.broker_id, a.status,
	a.requested_rent_value, a.monthly_income, a.has_negative_records, a.employment_status, a.notes, a.created_at, a.updated_at`

// Create persiste uma nova solicitação.
func (r *ApplicationRepo) Create(ctx context.Context, app *entity.RentalApplication) error {
	query := `
		INSERT INTO rental_applications
			(id, application_number, property_id, applicant_id, broker_id, status,
			 requested_rent_value, monthly_income, has_negative_records, employment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		app.ID, app.ApplicationNumber, app.PropertyID, app.ApplicantID, app.BrokerID, app.Status,
		app.RequestedRentValue, app.MonthlyIncome, app.HasNegativeRecords, app.EmploymentStatus,
		app.Notes, app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert rental application: %w", err)
	}
	return nil
}

// GetByID busca uma solicitação por id. Devolve (nil, nil) quando não existe.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*entity.RentalApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM rental_applications a WHERE a.id = $1`
	var app entity.RentalApplication
	err := r.q.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.ApplicationNumber, &app.PropertyID, &app.ApplicantID, &app.BrokerID, &app.Status,
		&app.RequestedRentValue, &app.MonthlyIncome, &app.HasNegativeRecords, &app.EmploymentStatus,
		&app.Notes, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rental application: %w", err)
	}
	return &app, nil
}

// Update grava status, notas e carimbo de atualização.
func (r *ApplicationRepo) Update(ctx context.Context, app *entity.RentalApplication) error {
	query := `
		UPDATE rental_applications
		SET status = $2, notes = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, app.ID, app.Status, app.Notes, app.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update rental application: %w", err)
	}
	return nil
}

// ListAll lista todas as solicitações (ADMIN e DIRECTOR).
func (r *ApplicationRepo) ListAll(ctx context.Context) ([]*entity.RentalApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM rental_applications a ORDER BY a.created_at DESC`
	return r.list(ctx, query)
}

// ListByApplicant lista as solicitações de um inquilino.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*entity.RentalApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM rental_applications a WHERE a.applicant_id = $1 ORDER BY a.created_at DESC`
	return r.list(ctx, query, applicantID)
}

// ListByBroker lista as solicitações vinculadas a um corretor.
func (r *ApplicationRepo) ListByBroker(ctx context.Context, brokerID string) ([]*entity.RentalApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM rental_applications a WHERE a.broker_id = $1 ORDER BY a.created_at DESC`
	return r.list(ctx, query, brokerID)
}

// ListByPropertyOwner lista as solicitações sobre imóveis da imobiliária.
func (r *ApplicationRepo) ListByPropertyOwner(ctx context.Context, ownerID string) ([]*entity.RentalApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM rental_applications a
		JOIN properties p ON p.id = a.property_id
		WHERE p.owner_user_id = $1
		ORDER BY a.created_at DESC`
	return r.list(ctx, query, ownerID)
}

// ListByPropertyOwnerParent lista as solicitações das imobiliárias vinculadas
// a um franqueado.
func (r *ApplicationRepo) ListByPropertyOwnerParent(ctx context.Context, parentID string) ([]*entity.RentalApplication, error) {
	query := `
		SELECT ` + applicationColumns + `
		FROM rental_applications a
		JOIN properties p ON p.id = a.property_id
		JOIN users owner ON owner.id = p.owner_user_id
		WHERE owner.parent_user_id = $1
		ORDER BY a.created_at DESC`
	return r.list(ctx, query, parentID)
}

func (r *ApplicationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.RentalApplication, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rental applications: %w", err)
	}
	defer rows.Close()

	out := []*entity.RentalApplication{}
	for rows.Next() {
		var app entity.RentalApplication
		if err := rows.Scan(
			&app.ID, &app.ApplicationNumber, &app.PropertyID, &app.ApplicantID, &app.BrokerID, &app.Status,
			&app.RequestedRentValue, &app.MonthlyIncome, &app.HasNegativeRecords, &app.EmploymentStatus,
			&app.Notes, &app.CreatedAt, &app.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rental application: %w", err)
		}
		out = append(out, &app)
	}
	return out, rows.Err()
}
