package supabase

import (
	"context"
	"fmt"
	"strings"

	supa "github.com/nedpals/supabase-go"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/pkg/config"
	"github.com/facturio/facturio-api/pkg/jwt"
)

// TokenVerifier valida un access token del proveedor y devuelve la identidad.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (entity.Principal, error)
}

// NewVerifier elige la implementación según AUTH_MODE.
func NewVerifier(cfg config.AuthConfig) (TokenVerifier, error) {
	switch cfg.Mode {
	case config.AuthModeLocal:
		return NewLocalVerifier(cfg.JWTSecret), nil
	case config.AuthModeRemote:
		return NewRemoteVerifier(cfg.SupabaseURL, cfg.SupabaseKey)
	default:
		return nil, fmt.Errorf("supabase: modo de autenticación desconocido %q", cfg.Mode)
	}
}

// LocalVerifier comprueba la firma HS256 con el JWT secret del proyecto, sin red.
type LocalVerifier struct {
	secret string
}

// NewLocalVerifier construye el verificador con el secreto del proyecto.
func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: secret}
}

// Verify valida firma y expiración; el email se normaliza a minúsculas.
func (v *LocalVerifier) Verify(_ context.Context, token string) (entity.Principal, error) {
	claims, err := jwt.Parse(v.secret, token)
	if err != nil {
		return entity.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return entity.Principal{
		ID:    claims.Subject,
		Email: strings.ToLower(strings.TrimSpace(claims.Email)),
	}, nil
}

// RemoteVerifier pregunta a Supabase (/auth/v1/user) por el dueño del token.
type RemoteVerifier struct {
	client *supa.Client
}

// NewRemoteVerifier crea el cliente de Supabase con la URL del proyecto y la anon key.
func NewRemoteVerifier(url, anonKey string) (*RemoteVerifier, error) {
	client := supa.CreateClient(url, anonKey)
	if client == nil {
		return nil, fmt.Errorf("supabase: no se pudo crear el cliente para %s", url)
	}
	return &RemoteVerifier{client: client}, nil
}

// Verify consulta el usuario dueño del token; cualquier fallo es domain.ErrUnauthorized.
func (v *RemoteVerifier) Verify(ctx context.Context, token string) (entity.Principal, error) {
	user, err := v.client.Auth.User(ctx, token)
	if err != nil {
		return entity.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if user == nil || user.ID == "" {
		return entity.Principal{}, fmt.Errorf("%w: usuario vacío", domain.ErrUnauthorized)
	}
	return entity.Principal{
		ID:    user.ID,
		Email: strings.ToLower(strings.TrimSpace(user.Email)),
	}, nil
}
