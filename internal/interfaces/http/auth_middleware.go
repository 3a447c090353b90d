package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/pkg/logger"
)

// Locals keys para UserID y CompanyID en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
)

// AuthMiddleware valida el Bearer Token contra el proveedor de identidad, resuelve
// (o aprovisiona) la empresa del usuario y deja UserID y CompanyID en c.Locals.
func AuthMiddleware(verifier tokenVerifier, resolver identityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		ctx := c.UserContext()
		principal, err := verifier.Verify(ctx, tokenString)
		if err != nil {
			logger.FromContext(ctx).Debug().Err(err).Msg("token rechazado")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		identity, err := resolver.Resolve(ctx, principal)
		if err != nil {
			if errors.Is(err, domain.ErrMissingEmail) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_EMAIL", Message: "el token no incluye email"})
			}
			return writeError(c, err)
		}

		c.Locals(LocalUserID, identity.UserID)
		c.Locals(LocalCompanyID, identity.CompanyID)

		log := logger.FromContext(ctx).Zerolog().With().
			Str("user_id", identity.UserID).
			Str("company_id", identity.CompanyID).
			Logger()
		c.SetUserContext(log.WithContext(ctx))
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
