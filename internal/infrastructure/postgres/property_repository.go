package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.PropertyRepository = (*PropertyRepo)(nil)

// PropertyRepo implementação do porto PropertyRepository sobre PostgreSQL.
type PropertyRepo struct {
	q Querier
}

// NewPropertyRepository constrói o adaptador de persistência de imóveis.
func NewPropertyRepository(q Querier) *PropertyRepo {
	return &PropertyRepo{q: q}
}

const propertyColumns = `id, owner_user_id, title, address, city, state, postal_code, rent_value, description, status, created_at, updated_at`

// Create persiste um novo imóvel.
func (r *PropertyRepo) Create(ctx context.Context, property *entity.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		property.ID, property.OwnerID, property.Title, property.Address, property.City,
		property.State, property.PostalCode, property.RentValue, property.Description,
		property.Status, property.CreatedAt, property.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert property: %w", err)
	}
	return nil
}

// GetByID busca um imóvel por id. Devolve (nil, nil) quando não existe.
func (r *PropertyRepo) GetByID(ctx context.Context, id string) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	var p entity.Property
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.City, &p.State,
		&p.PostalCode, &p.RentValue, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get property: %w", err)
	}
	return &p, nil
}

// ListByOwner lista os imóveis de uma imobiliária.
func (r *PropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_user_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list properties by owner: %w", err)
	}
	defer rows.Close()
	return scanProperties(rows)
}

// List lista todos os imóveis.
func (r *PropertyRepo) List(ctx context.Context) ([]*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()
	return scanProperties(rows)
}

func scanProperties(rows pgx.Rows) ([]*entity.Property, error) {
	out := []*entity.Property{}
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Title, &p.Address, &p.City, &p.State,
			&p.PostalCode, &p.RentValue, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
