package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// PropertyRepository porta de persistência para imóveis.
type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id string) (*entity.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Property, error)
	List(ctx context.Context) ([]*entity.Property, error)
}
