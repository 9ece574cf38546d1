package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagpro/fianca-api/internal/application/dto"
	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/pkg/jwt"
	"github.com/pagpro/fianca-api/pkg/logger"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func newUseCase() (*UseCase, *fakeUserRepo) {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	uc := NewUseCase(repo, TokenConfig{Secret: "test-secret", Issuer: "fianca-api", ExpMinutes: 60}, logger.Nop())
	return uc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, repo := newUseCase()

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "imob@example.com",
		Password: "s3nh4-forte",
		FullName: "Imobiliária Centro",
		Role:     entity.RoleImobiliaria,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleImobiliaria, user.Role)

	// a senha nunca fica em claro
	stored := repo.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3nh4-forte", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "imob@example.com", Password: "s3nh4-forte"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// o token carrega id e papel para o middleware
	userID, role, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleImobiliaria, role)
}

func TestRegister_InvalidRole(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "x@example.com",
		Password: "123456",
		Role:     "GERENTE",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newUseCase()

	req := dto.RegisterRequest{Email: "dup@example.com", Password: "123456", Role: entity.RoleInquilino}
	_, err := uc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ParentMustExist(t *testing.T) {
	uc, repo := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "corretor@example.com",
		Password: "123456",
		Role:     entity.RoleCorretor,
		ParentID: "nao-existe",
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	franchise, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "franq@example.com",
		Password: "123456",
		Role:     entity.RoleFranqueado,
	})
	require.NoError(t, err)

	agency, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "imob@example.com",
		Password: "123456",
		Role:     entity.RoleImobiliaria,
		ParentID: franchise.ID,
	})
	require.NoError(t, err)

	stored := repo.users[agency.ID]
	require.NotNil(t, stored.ParentID)
	assert.Equal(t, franchise.ID, *stored.ParentID)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@example.com", Password: "correta", Role: entity.RoleInquilino,
	})
	require.NoError(t, err)

	_, errWrong := uc.Login(context.Background(), dto.LoginRequest{Email: "a@example.com", Password: "errada"})
	_, errUnknown := uc.Login(context.Background(), dto.LoginRequest{Email: "b@example.com", Password: "tanto-faz"})

	require.ErrorIs(t, errWrong, domain.ErrUnauthorized)
	require.ErrorIs(t, errUnknown, domain.ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	uc, repo := newUseCase()

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "off@example.com", Password: "123456", Role: entity.RoleInquilino,
	})
	require.NoError(t, err)
	repo.users[user.ID].IsActive = false

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "off@example.com", Password: "123456"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
