package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusFinalized = "FINALIZED"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// InvoiceStatuses lista los estados aceptados (coincide con el CHECK de la tabla invoices).
var InvoiceStatuses = []string{
	InvoiceStatusDraft,
	InvoiceStatusSent,
	InvoiceStatusFinalized,
	InvoiceStatusPaid,
	InvoiceStatusOverdue,
	InvoiceStatusCancelled,
}

// PendingInvoiceStatuses son los estados que cuentan como pendientes de cobro en el dashboard.
var PendingInvoiceStatuses = []string{
	InvoiceStatusSent,
	InvoiceStatusFinalized,
	InvoiceStatusOverdue,
}

// IsValidInvoiceStatus indica si s es un estado conocido.
func IsValidInvoiceStatus(s string) bool {
	for _, st := range InvoiceStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Invoice representa la cabecera de una factura. Los montos están en céntimos.
type Invoice struct {
	ID        string
	CompanyID string
	ClientID  string
	Number    string
	Status    string
	Date      time.Time
	DueDate   *time.Time
	Subtotal  int64
	TaxAmount int64
	Total     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceItem representa una línea de la factura.
// UnitPrice en céntimos; TaxRate en porcentaje (20 = 20%); LineTotal redondeado solo para almacenamiento.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   int64
	TaxRate     decimal.Decimal
	LineTotal   int64
}
