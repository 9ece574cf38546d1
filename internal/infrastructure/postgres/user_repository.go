package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pagpro/fianca-api/internal/domain"
	"github.com/pagpro/fianca-api/internal/domain/entity"
	"github.com/pagpro/fianca-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo usuário.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, role, parent_user_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName, user.Phone,
		user.Role, user.ParentID, user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID busca um usuário por id. Devolve (nil, nil) quando não existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, parent_user_id, is_active, created_at, updated_at
		FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByEmail busca um usuário por email. Devolve (nil, nil) quando não existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, email, password_hash, full_name, phone, role, parent_user_id, is_active, created_at, updated_at
		FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, email))
}

// Update grava as alterações de um usuário existente.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, full_name = $3, phone = $4, role = $5, parent_user_id = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.FullName, user.Phone, user.Role,
		user.ParentID, user.IsActive, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone,
		&u.Role, &u.ParentID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
