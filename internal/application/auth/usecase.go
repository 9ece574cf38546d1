// Package auth cuida de cadastro e login dos usuários da rede de parceiros.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
	"github.com/pagpro/fianca-api/pkg/jwt"
	"github.com/pagpro/fianca-api/pkg/logger"
)

// TokenConfig parâmetros de emissão do JWT.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase cadastro e autenticação.
type UseCase struct {
	userRepo repository.UserRepository
	token    TokenConfig
	log      *logger.Logger
}

// NewUseCase constrói o caso de uso.
func NewUseCase(userRepo repository.UserRepository, token TokenConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, token: token, log: log}
}

// Register cria um usuário com papel válido e, quando informado, vínculo a um
// nó existente da rede. A senha nunca é persistida em claro.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("email e senha são obrigatórios: %w", domain.ErrInvalidInput)
	}
	if !entity.IsValidRole(in.Role) {
		return nil, fmt.Errorf("papel %q: %w", in.Role, domain.ErrInvalidInput)
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	var parentID *string
	if in.ParentID != "" {
		parent, err := uc.userRepo.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fmt.Errorf("nó pai %s: %w", in.ParentID, domain.ErrUserNotFound)
		}
		parentID = &parent.ID
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("gerar hash de senha: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         in.Role,
		ParentID:     parentID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("usuário cadastrado")
	return userResponse(user), nil
}

// Login valida as credenciais e emite o JWT com id e papel.
// Credencial errada e email inexistente respondem o mesmo erro.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.token.Secret, user.ID, user.Role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("emitir token: %w", err)
	}
	return &dto.LoginResponse{Token: token, User: *userResponse(user)}, nil
}

// Me devolve o perfil do usuário autenticado.
func (uc *UseCase) Me(ctx context.Context, actorID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return userResponse(user), nil
}

func userResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
		ParentID: u.ParentID,
	}
}
