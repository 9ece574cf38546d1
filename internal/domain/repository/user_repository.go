package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// UserRepository porta de persistência para usuários / nós da rede de
// parceiros. GetByID devolve (nil, nil) quando não existe; o distribuidor
// hierárquico depende disso para encerrar a subida na raiz.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
