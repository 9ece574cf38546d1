package postgres

import (
	"context"
	"fmt"

	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementação do porto DocumentRepository sobre PostgreSQL.
// Só metadados; os bytes ficam no storage externo.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository constrói o adaptador de leitura de documentos.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// ListByRelatedEntity lista os documentos anexados a uma entidade.
func (r *DocumentRepo) ListByRelatedEntity(ctx context.Context, entityType, entityID string) ([]*entity.Document, error) {
	query := `
		SELECT id, related_entity_type, related_entity_id, original_file_name, mime_type, size_bytes, created_at
		FROM documents
		WHERE related_entity_type = $1 AND related_entity_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(ctx, query, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []*entity.Document{}
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(
			&d.ID, &d.RelatedEntityType, &d.RelatedEntityID,
			&d.OriginalFileName, &d.MimeType, &d.Size, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
