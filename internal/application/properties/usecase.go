// Package properties cadastro e consulta de imóveis.
package properties

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

// UseCase operações sobre imóveis.
type UseCase struct {
	propertyRepo repository.PropertyRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(propertyRepo repository.PropertyRepository) *UseCase {
	return &UseCase{propertyRepo: propertyRepo}
}

// Create cadastra um imóvel. Só imobiliária cadastra, sempre como dona.
func (uc *UseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	if actor.Role != entity.RoleImobiliaria {
		return nil, domain.ErrForbidden
	}
	if in.Title == "" || in.Address == "" {
		return nil, fmt.Errorf("título e endereço são obrigatórios: %w", domain.ErrInvalidInput)
	}
	if in.RentValue.IsNegative() || in.RentValue.IsZero() {
		return nil, fmt.Errorf("valor de aluguel deve ser positivo: %w", domain.ErrInvalidInput)
	}

	now := time.Now()
	property := &entity.Property{
		ID:          uuid.New().String(),
		OwnerID:     actor.ID,
		Title:       in.Title,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		PostalCode:  in.PostalCode,
		RentValue:   in.RentValue,
		Description: in.Description,
		Status:      entity.PropertyAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	return propertyResponse(property), nil
}

// ListForActor lista os imóveis visíveis: imobiliária vê os próprios; os
// demais papéis veem o catálogo todo (inquilino e corretor navegam o
// portfólio antes de abrir solicitação).
func (uc *UseCase) ListForActor(ctx context.Context, actor dto.Actor) ([]*dto.PropertyResponse, error) {
	var (
		props []*entity.Property
		err   error
	)
	if actor.Role == entity.RoleImobiliaria {
		props, err = uc.propertyRepo.ListByOwner(ctx, actor.ID)
	} else {
		props, err = uc.propertyRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, propertyResponse(p))
	}
	return out, nil
}

// Get devolve um imóvel pelo id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.PropertyResponse, error) {
	property, err := uc.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("imóvel %s: %w", id, domain.ErrNotFound)
	}
	return propertyResponse(property), nil
}

func propertyResponse(p *entity.Property) *dto.PropertyResponse {
	return &dto.PropertyResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Title:       p.Title,
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		PostalCode:  p.PostalCode,
		RentValue:   p.RentValue,
		Description: p.Description,
		Status:      p.Status,
	}
}
