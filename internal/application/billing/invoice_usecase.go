package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/invoicing"
	"github.com/facturio/facturio-api/internal/domain/repository"
	"github.com/facturio/facturio-api/pkg/logger"
)

// InvoiceUseCase casos de uso de facturas: emisión, consulta, edición y estados.
type InvoiceUseCase struct {
	txRunner    InvoicingTxRunner
	invoiceRepo repository.InvoiceRepository
	clientRepo  repository.ClientRepository
	issuer      *InvoiceIssuer
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner InvoicingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	clientRepo repository.ClientRepository,
	issuer *InvoiceIssuer,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		issuer:      issuer,
		now:         time.Now,
	}
}

// Create valida cliente y líneas, calcula totales y, en una sola transacción, consume el
// consecutivo y guarda cabecera y líneas. Las líneas inválidas se rechazan antes de tocar el contador.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, companyID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}

	invoiceID := uuid.New().String()
	items := toItems(invoiceID, in.Items)
	if err := invoicing.ValidateItems(items); err != nil {
		return nil, err
	}
	totals := uc.issuer.ComputeTotals(items)
	invoicing.FillLineTotals(items)

	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	inv := &entity.Invoice{
		ID:        invoiceID,
		CompanyID: companyID,
		ClientID:  client.ID,
		Status:    entity.InvoiceStatusDraft,
		Date:      date,
		DueDate:   in.DueDate,
		Subtotal:  totals.Subtotal,
		TaxAmount: totals.TaxAmount,
		Total:     totals.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = uc.txRunner.RunInvoicing(ctx, func(companyRepo repository.CompanyRepository, invoiceRepo repository.InvoiceRepository) error {
		number, err := uc.issuer.IssueNumber(ctx, companyRepo, companyID)
		if err != nil {
			return err
		}
		inv.Number = number
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		return invoiceRepo.CreateItems(ctx, inv.ID, items)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().
		Str("company_id", companyID).
		Str("invoice_id", inv.ID).
		Str("number", inv.Number).
		Int64("total", inv.Total).
		Msg("factura emitida")

	return toInvoiceResponse(inv, client, items), nil
}

// Get devuelve la factura con cliente y líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return uc.load(ctx, inv)
}

func (uc *InvoiceUseCase) load(ctx context.Context, inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	client, err := uc.clientRepo.GetByID(ctx, inv.CompanyID, inv.ClientID)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, client, items), nil
}

// List lista las facturas de la empresa (más recientes primero) con su cliente, sin líneas.
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, q dto.InvoiceListQuery) ([]*dto.InvoiceResponse, error) {
	limit, offset := dto.NormalizePage(q.Limit, q.Offset)
	list, err := uc.invoiceRepo.List(ctx, companyID, repository.InvoiceFilter{
		Status:   q.Status,
		ClientID: q.ClientID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return []*dto.InvoiceResponse{}, nil
	}

	ids := lo.Uniq(lo.Map(list, func(inv *entity.Invoice, _ int) string { return inv.ClientID }))
	clients, err := uc.clientRepo.GetByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(clients, func(c *entity.Client) string { return c.ID })

	return lo.Map(list, func(inv *entity.Invoice, _ int) *dto.InvoiceResponse {
		return toInvoiceResponse(inv, byID[inv.ClientID], nil)
	}), nil
}

// Update cambia cliente y/o vencimiento. Si vienen líneas, reemplaza todas y recalcula los totales;
// si no, los totales no se escriben. El número nunca cambia.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}

	patch := repository.InvoicePatch{DueDate: in.DueDate, UpdatedAt: uc.now()}
	if in.ClientID != nil && *in.ClientID != inv.ClientID {
		client, err := uc.clientRepo.GetByID(ctx, companyID, *in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrClientNotFound
		}
		patch.ClientID = &client.ID
	}

	var items []*entity.InvoiceItem
	if in.Items != nil {
		items = toItems(inv.ID, in.Items)
		if err := invoicing.ValidateItems(items); err != nil {
			return nil, err
		}
		totals := uc.issuer.ComputeTotals(items)
		invoicing.FillLineTotals(items)
		patch.Totals = &repository.InvoiceTotals{
			Subtotal:  totals.Subtotal,
			TaxAmount: totals.TaxAmount,
			Total:     totals.Total,
		}
	}

	err = uc.txRunner.RunInvoicing(ctx, func(_ repository.CompanyRepository, invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Update(ctx, companyID, inv.ID, patch); err != nil {
			return err
		}
		if items != nil {
			return invoiceRepo.ReplaceItems(ctx, inv.ID, items)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, companyID, inv.ID)
}

// UpdateStatus cambia el estado de la factura.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.InvoiceResponse, error) {
	if !entity.IsValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.invoiceRepo.UpdateStatus(ctx, companyID, id, status); err != nil {
		return nil, err
	}
	return uc.Get(ctx, companyID, id)
}

// Delete elimina una factura en borrador (las líneas se borran en cascada).
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	inv, err := uc.invoiceRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrInvoiceNotFound
	}
	if inv.Status != entity.InvoiceStatusDraft {
		return domain.ErrInvoiceLocked
	}
	return uc.invoiceRepo.Delete(ctx, companyID, id)
}
