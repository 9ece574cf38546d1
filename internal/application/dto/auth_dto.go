package dto

// RegisterRequest criação de usuário na rede de parceiros.
// ParentID vincula o novo nó ao nível acima (ex: imobiliária ao franqueado).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
	ParentID string `json:"parent_id,omitempty"`
}

// LoginRequest credenciais de acesso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse visão pública de um usuário (sem hash).
type UserResponse struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name,omitempty"`
	Role     string  `json:"role"`
	ParentID *string `json:"parent_id,omitempty"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
