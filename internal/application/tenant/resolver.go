// Package tenant resuelve la empresa de cada principal autenticado y aprovisiona
// empresa y usuario la primera vez que se ve un principal.
package tenant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	goCache "github.com/patrickmn/go-cache"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
	"github.com/facturio/facturio-api/pkg/logger"
)

// DefaultCacheTTL tiempo que se recuerda la resolución principal → empresa.
const DefaultCacheTTL = 10 * time.Minute

// Identity resultado de la resolución: usuario interno y empresa a la que pertenece.
type Identity struct {
	UserID    string
	CompanyID string
}

// Resolver traduce un Principal a su Identity, aprovisionando si hace falta.
type Resolver struct {
	users    repository.UserRepository
	txRunner ProvisioningTxRunner
	cache    *goCache.Cache
}

// NewResolver construye el resolver; ttl <= 0 usa DefaultCacheTTL.
func NewResolver(users repository.UserRepository, txRunner ProvisioningTxRunner, ttl time.Duration) *Resolver {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Resolver{
		users:    users,
		txRunner: txRunner,
		cache:    goCache.New(ttl, 2*ttl),
	}
}

// Resolve busca el usuario por subject; si no existe, por email (y vincula el subject);
// si tampoco, crea empresa "My Company" con el usuario como OWNER.
// Sin email no se puede aprovisionar: devuelve domain.ErrMissingEmail.
func (r *Resolver) Resolve(ctx context.Context, p entity.Principal) (*Identity, error) {
	if p.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if v, ok := r.cache.Get(p.ID); ok {
		id := v.(Identity)
		return &id, nil
	}

	id, err := r.lookup(ctx, p)
	if err != nil {
		return nil, err
	}
	if id == nil {
		id, err = r.provision(ctx, p)
		if errors.Is(err, domain.ErrDuplicate) {
			// otra petición concurrente aprovisionó al mismo principal
			id, err = r.lookup(ctx, p)
			if err == nil && id == nil {
				err = domain.ErrConflict
			}
		}
		if err != nil {
			return nil, err
		}
	}

	r.cache.SetDefault(p.ID, *id)
	return id, nil
}

// Invalidate olvida la resolución cacheada de un principal.
func (r *Resolver) Invalidate(principalID string) {
	r.cache.Delete(principalID)
}

func (r *Resolver) lookup(ctx context.Context, p entity.Principal) (*Identity, error) {
	u, err := r.users.GetBySupabaseID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return &Identity{UserID: u.ID, CompanyID: u.CompanyID}, nil
	}

	email := normalizeEmail(p.Email)
	if email == "" {
		return nil, domain.ErrMissingEmail
	}
	u, err = r.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, nil
	}
	if err := r.users.BindSupabaseID(ctx, u.ID, p.ID); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().
		Str("user_id", u.ID).
		Str("company_id", u.CompanyID).
		Msg("usuario existente vinculado al proveedor de identidad")
	return &Identity{UserID: u.ID, CompanyID: u.CompanyID}, nil
}

func (r *Resolver) provision(ctx context.Context, p entity.Principal) (*Identity, error) {
	now := time.Now()
	email := normalizeEmail(p.Email)
	company := &entity.Company{
		ID:                uuid.New().String(),
		Name:              entity.DefaultCompanyName,
		Email:             email,
		Country:           entity.DefaultCountry,
		InvoicePrefix:     entity.DefaultInvoicePrefix,
		NextInvoiceNumber: 1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	user := &entity.User{
		ID:         uuid.New().String(),
		CompanyID:  company.ID,
		SupabaseID: p.ID,
		Email:      email,
		Role:       entity.RoleOwner,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.txRunner.RunProvisioning(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("user_id", user.ID).
		Str("company_id", company.ID).
		Msg("empresa aprovisionada")
	return &Identity{UserID: user.ID, CompanyID: company.ID}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
