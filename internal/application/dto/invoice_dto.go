package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura. UnitPrice en céntimos, TaxRate en porcentaje.
type InvoiceItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    decimal.Decimal `json:"quantity" validate:"dgt0"`
	UnitPrice   int64           `json:"unitPrice" validate:"min=0"`
	TaxRate     decimal.Decimal `json:"taxRate" validate:"dgte0"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	ClientID string               `json:"clientId" validate:"required,uuid"`
	Date     *time.Time           `json:"date,omitempty"` // por defecto, ahora
	DueDate  *time.Time           `json:"dueDate,omitempty"`
	Items    []InvoiceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest body para PATCH/POST /api/invoices/:id.
// Items nil = no se tocan las líneas ni los totales; si viene, reemplaza todas las líneas.
type UpdateInvoiceRequest struct {
	ClientID *string              `json:"clientId,omitempty" validate:"omitempty,uuid"`
	DueDate  *time.Time           `json:"dueDate,omitempty"`
	Items    []InvoiceItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// UpdateInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=DRAFT SENT FINALIZED PAID OVERDUE CANCELLED"`
}

// InvoiceListQuery parámetros de GET /api/invoices.
type InvoiceListQuery struct {
	Limit    int    `query:"limit" validate:"min=0,max=100"`
	Offset   int    `query:"offset" validate:"min=0"`
	Status   string `query:"status" validate:"omitempty,oneof=DRAFT SENT FINALIZED PAID OVERDUE CANCELLED"`
	ClientID string `query:"clientId" validate:"omitempty,uuid"`
}

// InvoiceResponse factura con cliente y líneas. Montos en céntimos.
type InvoiceResponse struct {
	ID        string                `json:"id"`
	CompanyID string                `json:"companyId"`
	ClientID  string                `json:"clientId"`
	Client    *ClientResponse       `json:"client,omitempty"`
	Number    string                `json:"number"`
	Status    string                `json:"status"`
	Date      time.Time             `json:"date"`
	DueDate   *time.Time            `json:"dueDate"`
	Subtotal  int64                 `json:"subtotal"`
	TaxAmount int64                 `json:"taxAmount"`
	Total     int64                 `json:"total"`
	Items     []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// InvoiceItemResponse línea en la respuesta. Total = UnitPrice × Quantity redondeado.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   int64           `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Total       int64           `json:"total"`
}
