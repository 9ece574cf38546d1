package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// ApplicationRepository porta de persistência para solicitações de seguro
// fiança. Os List* implementam a visibilidade por papel: cada ator só enxerga
// as solicitações da sua posição na rede.
type ApplicationRepository interface {
	Create(ctx context.Context, app *entity.RentalApplication) error
	GetByID(ctx context.Context, id string) (*entity.RentalApplication, error)
	Update(ctx context.Context, app *entity.RentalApplication) error
	ListAll(ctx context.Context) ([]*entity.RentalApplication, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*entity.RentalApplication, error)
	ListByBroker(ctx context.Context, brokerID string) ([]*entity.RentalApplication, error)
	// ListByPropertyOwner: solicitações sobre imóveis da imobiliária.
	ListByPropertyOwner(ctx context.Context, ownerID string) ([]*entity.RentalApplication, error)
	// ListByPropertyOwnerParent: solicitações das imobiliárias vinculadas a um
	// franqueado (junção via parent_user_id do dono do imóvel).
	ListByPropertyOwnerParent(ctx context.Context, parentID string) ([]*entity.RentalApplication, error)
}
