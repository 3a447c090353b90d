package repository

import (
	"context"

	"github.com/facturio/facturio-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las búsquedas devuelven (nil, nil) si no hay coincidencia.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetBySupabaseID(ctx context.Context, supabaseID string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// BindSupabaseID vincula un usuario existente (creado por email) con el subject del proveedor.
	BindSupabaseID(ctx context.Context, userID, supabaseID string) error
	UpdateProfile(ctx context.Context, userID string, firstName, lastName *string) error
}
