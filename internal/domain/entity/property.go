package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status do imóvel.
const (
	PropertyAvailable = "AVAILABLE"
	PropertyRented    = "RENTED"
	PropertyInactive  = "INACTIVE"
)

// Property imóvel oferecido por uma imobiliária.
type Property struct {
	ID          string
	OwnerID     string // imobiliária dona do anúncio
	Title       string
	Address     string
	City        string
	State       string
	PostalCode  string
	RentValue   decimal.Decimal
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
