package entity

import "time"

// Document metadados de um documento anexado a uma entidade (solicitação,
// apólice, ...). O armazenamento dos bytes fica fora deste serviço; aqui só
// circula o que o prompt do oráculo precisa: nome, tipo e tamanho.
type Document struct {
	ID                string
	RelatedEntityType string // ex: "rental_application"
	RelatedEntityID   string
	OriginalFileName  string
	MimeType          string
	Size              int64 // bytes
	CreatedAt         time.Time
}
