package repository

import (
	"context"

	"github.com/facturio/facturio-api/internal/domain/entity"
)

// CompanyPatch campos opcionales de la empresa; nil = no se modifica.
type CompanyPatch struct {
	Name              *string
	Email             *string
	Address           *string
	City              *string
	ZipCode           *string
	Country           *string
	Siret             *string
	TVANumber         *string
	LogoURL           *string
	InvoicePrefix     *string
	NextInvoiceNumber *int64
}

// IsEmpty indica que no hay nada que actualizar.
func (p CompanyPatch) IsEmpty() bool {
	return p == CompanyPatch{}
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// Patch actualiza solo los campos no nil. Devuelve domain.ErrCompanyNotFound si no existe y
	// domain.ErrConflict si NextInvoiceNumber es menor que el contador actual.
	Patch(ctx context.Context, id string, patch CompanyPatch) error
	// IncrementInvoiceCounter avanza el contador en exactamente 1 en una sola operación atómica
	// y devuelve el valor previo (consecutivo asignado) junto con el prefijo.
	// Devuelve domain.ErrCompanyNotFound si la empresa no existe.
	IncrementInvoiceCounter(ctx context.Context, companyID string) (seq int64, prefix string, err error)
}
