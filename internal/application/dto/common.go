package dto

// ErrorResponse corpo padrão de erro da API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Actor identidade do usuário autenticado que executa a operação.
// Vem do JWT; as decisões de autorização dos casos de uso usam só isto.
type Actor struct {
	ID   string
	Role string
}
