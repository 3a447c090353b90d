package billing

import (
	"context"
	"time"

	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/invoicing"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

// InvoiceIssuer asigna números de factura por empresa y calcula totales.
type InvoiceIssuer struct {
	now func() time.Time
}

// NewInvoiceIssuer construye el emisor con el reloj del sistema.
func NewInvoiceIssuer() *InvoiceIssuer {
	return &InvoiceIssuer{now: time.Now}
}

// IssueNumber consume el siguiente consecutivo de la empresa con un incremento atómico en el store
// y devuelve "{prefix}{año}-{consecutivo}". El año es el de emisión; el consecutivo no se reinicia.
// No reintenta. Llamar dentro de la transacción que guarda la factura.
func (i *InvoiceIssuer) IssueNumber(ctx context.Context, companies repository.CompanyRepository, companyID string) (string, error) {
	seq, prefix, err := companies.IncrementInvoiceCounter(ctx, companyID)
	if err != nil {
		return "", err
	}
	return invoicing.FormatNumber(prefix, i.now().Year(), seq), nil
}

// ComputeTotals ver invoicing.ComputeTotals.
func (i *InvoiceIssuer) ComputeTotals(items []*entity.InvoiceItem) invoicing.Totals {
	return invoicing.ComputeTotals(items)
}
