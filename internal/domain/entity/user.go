package entity

import "time"

// Papéis da hierarquia de parceiros, do topo da rede até o inquilino final.
const (
	RoleAdmin       = "ADMIN"
	RoleDirector    = "DIRECTOR"
	RoleFranqueado  = "FRANQUEADO"
	RoleImobiliaria = "IMOBILIARIA"
	RoleCorretor    = "CORRETOR"
	RoleInquilino   = "INQUILINO"
)

// Roles lista todos os papéis conhecidos. O tamanho desta lista também
// limita a subida na hierarquia de parceiros (guarda contra ciclos).
var Roles = []string{
	RoleAdmin, RoleDirector, RoleFranqueado,
	RoleImobiliaria, RoleCorretor, RoleInquilino,
}

// IsValidRole informa se o papel é um dos conhecidos.
func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User representa um usuário / nó da rede de parceiros.
// ParentID é uma referência fraca (só lookup): cada nó tem no máximo um pai,
// formando uma floresta. O vínculo não é dono do ciclo de vida do pai.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano no domínio após persistir
	FullName     string
	Phone        string
	Role         string
	ParentID     *string // nó acima na rede (franqueado da imobiliária, etc.)
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
