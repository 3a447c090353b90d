package billing

import (
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain/entity"
)

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Email:     c.Email,
		Address:   c.Address,
		City:      c.City,
		ZipCode:   c.ZipCode,
		Country:   c.Country,
		TVANumber: c.TVANumber,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toInvoiceResponse(inv *entity.Invoice, client *entity.Client, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:        inv.ID,
		CompanyID: inv.CompanyID,
		ClientID:  inv.ClientID,
		Client:    toClientResponse(client),
		Number:    inv.Number,
		Status:    inv.Status,
		Date:      inv.Date,
		DueDate:   inv.DueDate,
		Subtotal:  inv.Subtotal,
		TaxAmount: inv.TaxAmount,
		Total:     inv.Total,
		Items: lo.Map(items, func(it *entity.InvoiceItem, _ int) dto.InvoiceItemResponse {
			return dto.InvoiceItemResponse{
				ID:          it.ID,
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TaxRate:     it.TaxRate,
				Total:       it.LineTotal,
			}
		}),
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// toItems crea las entidades de línea (con id nuevo) a partir del request.
func toItems(invoiceID string, in []dto.InvoiceItemRequest) []*entity.InvoiceItem {
	return lo.Map(in, func(it dto.InvoiceItemRequest, _ int) *entity.InvoiceItem {
		return &entity.InvoiceItem{
			ID:          uuid.New().String(),
			InvoiceID:   invoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		}
	})
}
