package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de uma parcela.
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
	PaymentOverdue = "OVERDUE"
)

// Métodos de pagamento aceitos.
const (
	PaymentMethodBoleto = "BOLETO"
	PaymentMethodPix    = "PIX"
)

// IsValidPaymentStatus informa se o status da parcela é um dos conhecidos.
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// PaymentScheduleEntry uma parcela do cronograma de uma apólice.
// Toda apólice nasce com exatamente 13 parcelas: 1 de adesão (vencimento
// imediato) + 12 mensais. Depois da emissão só o status, a referência externa
// e PaidAt mudam; nenhuma parcela é acrescentada ou removida.
type PaymentScheduleEntry struct {
	ID               string
	PolicyID         string
	DueDate          time.Time
	Amount           decimal.Decimal
	Status           string
	PaymentMethod    string
	PaidAt           *time.Time
	PaymentReference string // referência do provedor externo (linha digitável, txid, ...)
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
