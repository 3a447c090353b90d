package repository

import (
	"context"
	"time"

	"github.com/facturio/facturio-api/internal/domain/entity"
)

// InvoiceFilter filtros de listado de facturas.
type InvoiceFilter struct {
	Status   string
	ClientID string
	Limit    int
	Offset   int
}

// InvoiceTotals importes de cabecera en céntimos.
type InvoiceTotals struct {
	Subtotal  int64
	TaxAmount int64
	Total     int64
}

// InvoicePatch campos de cabecera a modificar; nil = no se toca.
// Totals solo viene informado cuando se reemplazan las líneas.
type InvoicePatch struct {
	ClientID  *string
	DueDate   *time.Time
	Totals    *InvoiceTotals
	UpdatedAt time.Time
}

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItems(ctx context.Context, invoiceID string, items []*entity.InvoiceItem) error
	// ReplaceItems borra todas las líneas de la factura e inserta las nuevas.
	ReplaceItems(ctx context.Context, invoiceID string, items []*entity.InvoiceItem) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	List(ctx context.Context, companyID string, filter InvoiceFilter) ([]*entity.Invoice, error)
	// Update escribe solo las columnas presentes en patch. El número nunca se modifica.
	Update(ctx context.Context, companyID, id string, patch InvoicePatch) error
	UpdateStatus(ctx context.Context, companyID, id, status string) error
	Delete(ctx context.Context, companyID, id string) error
}
