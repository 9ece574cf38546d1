package dto

import "github.com/shopspring/decimal"

// PropertyResponse visão pública de um imóvel.
type PropertyResponse struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	PostalCode  string          `json:"postal_code"`
	RentValue   decimal.Decimal `json:"rent_value"`
	Description string          `json:"description,omitempty"`
	Status      string          `json:"status"`
}

// CreatePropertyRequest cadastro de imóvel pela imobiliária.
type CreatePropertyRequest struct {
	Title       string          `json:"title"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	PostalCode  string          `json:"postal_code"`
	RentValue   decimal.Decimal `json:"rent_value"`
	Description string          `json:"description,omitempty"`
}
