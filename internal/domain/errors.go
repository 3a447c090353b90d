package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Variantes específicas; errors.Is contra la sentinela genérica sigue funcionando.
var (
	ErrCompanyNotFound = fmt.Errorf("empresa no encontrada: %w", ErrNotFound)
	ErrClientNotFound  = fmt.Errorf("cliente no encontrado: %w", ErrNotFound)
	ErrInvoiceNotFound = fmt.Errorf("factura no encontrada: %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("usuario no encontrado: %w", ErrNotFound)
	ErrMissingEmail    = fmt.Errorf("el token no contiene email: %w", ErrUnauthorized)
	ErrInvoiceLocked   = fmt.Errorf("solo se pueden eliminar facturas en borrador: %w", ErrConflict)
)
