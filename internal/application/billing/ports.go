package billing

import (
	"context"

	"github.com/facturio/facturio-api/internal/domain/repository"
)

// InvoicingTxRunner ejecuta fn dentro de una transacción con los repos de empresa y facturas.
// Si fn devuelve error se hace rollback: el contador de la empresa tampoco avanza.
type InvoicingTxRunner interface {
	RunInvoicing(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}
