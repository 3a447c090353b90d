package postgres

import (
	"context"
	"fmt"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userSelect = `
	SELECT id, company_id, COALESCE(supabase_id, ''), email, first_name, last_name, role, created_at, updated_at
	FROM users`

func (r *UserRepo) scanOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, userSelect+" WHERE "+where, arg).Scan(
		&u.ID, &u.CompanyID, &u.SupabaseID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, company_id, supabase_id, email, first_name, last_name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.CompanyID, nullIfEmpty(u.SupabaseID), u.Email, u.FirstName, u.LastName, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, "id = $1", id)
}

// GetBySupabaseID obtiene un usuario por el subject del proveedor de identidad.
func (r *UserRepo) GetBySupabaseID(ctx context.Context, supabaseID string) (*entity.User, error) {
	return r.scanOne(ctx, "supabase_id = $1", supabaseID)
}

// GetByEmail obtiene un usuario por email (se guarda en minúsculas).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, "email = $1", email)
}

// BindSupabaseID vincula el usuario con el subject del proveedor.
func (r *UserRepo) BindSupabaseID(ctx context.Context, userID, supabaseID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET supabase_id = $2, updated_at = now() WHERE id = $1`, userID, supabaseID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("bind supabase id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateProfile actualiza nombre y apellido; nil conserva el valor actual.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID string, firstName, lastName *string) error {
	query := `
		UPDATE users
		SET first_name = COALESCE($2, first_name), last_name = COALESCE($3, last_name), updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, userID, firstName, lastName)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
