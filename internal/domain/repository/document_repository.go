package repository

import (
	"context"

	"github.com/pagpro/fianca-api/internal/domain/entity"
)

// DocumentRepository porta de leitura de metadados de documentos.
// Este serviço nunca lê ou grava os bytes; só lista nome/tipo/tamanho para
// compor o prompt do oráculo de análise.
type DocumentRepository interface {
	ListByRelatedEntity(ctx context.Context, entityType, entityID string) ([]*entity.Document, error)
}
