package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

type invoiceRow struct {
	ID        string     `db:"id"`
	CompanyID string     `db:"company_id"`
	ClientID  string     `db:"client_id"`
	Number    string     `db:"number"`
	Status    string     `db:"status"`
	Date      time.Time  `db:"date"`
	DueDate   *time.Time `db:"due_date"`
	Subtotal  int64      `db:"subtotal"`
	TaxAmount int64      `db:"tax_amount"`
	Total     int64      `db:"total"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
}

func (r invoiceRow) toEntity() *entity.Invoice {
	return &entity.Invoice{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		ClientID:  r.ClientID,
		Number:    r.Number,
		Status:    r.Status,
		Date:      r.Date,
		DueDate:   r.DueDate,
		Subtotal:  r.Subtotal,
		TaxAmount: r.TaxAmount,
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type invoiceItemRow struct {
	ID          string          `db:"id"`
	InvoiceID   string          `db:"invoice_id"`
	Position    int             `db:"position"`
	Description string          `db:"description"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitPrice   int64           `db:"unit_price"`
	TaxRate     decimal.Decimal `db:"tax_rate"`
	LineTotal   int64           `db:"line_total"`
}

var invoiceColumns = []string{
	"id", "company_id", "client_id", "number", "status", "date", "due_date",
	"subtotal", "tax_amount", "total", "created_at", "updated_at",
}

var invoiceItemColumns = []string{
	"id", "invoice_id", "position", "description", "quantity", "unit_price", "tax_rate", "line_total",
}

// Create persiste la cabecera. Un número repetido en la empresa devuelve domain.ErrDuplicate.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	query, args, err := psql.Insert("invoices").
		Columns(invoiceColumns...).
		Values(inv.ID, inv.CompanyID, inv.ClientID, inv.Number, inv.Status, inv.Date, inv.DueDate,
			inv.Subtotal, inv.TaxAmount, inv.Total, inv.CreatedAt, inv.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: número de factura %s", domain.ErrDuplicate, inv.Number)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItems inserta todas las líneas en un único INSERT multi-fila.
func (r *InvoiceRepo) CreateItems(ctx context.Context, invoiceID string, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	b := psql.Insert("invoice_items").Columns(invoiceItemColumns...)
	for _, it := range items {
		b = b.Values(it.ID, invoiceID, it.Position, it.Description, it.Quantity, it.UnitPrice, it.TaxRate, it.LineTotal)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

// ReplaceItems borra las líneas actuales e inserta las nuevas (llamar dentro de una tx).
func (r *InvoiceRepo) ReplaceItems(ctx context.Context, invoiceID string, items []*entity.InvoiceItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return r.CreateItems(ctx, invoiceID, items)
}

// GetByID obtiene la cabecera de una factura de la empresa.
func (r *InvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	query, args, err := psql.Select(invoiceColumns...).
		From("invoices").
		Where(sq.Eq{"id": id, "company_id": companyID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row invoiceRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return row.toEntity(), nil
}

// GetItems devuelve las líneas en su orden original.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query, args, err := psql.Select(invoiceItemColumns...).
		From("invoice_items").
		Where(sq.Eq{"invoice_id": invoiceID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []invoiceItemRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get invoice items: %w", err)
	}
	out := make([]*entity.InvoiceItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.InvoiceItem{
			ID:          row.ID,
			InvoiceID:   row.InvoiceID,
			Position:    row.Position,
			Description: row.Description,
			Quantity:    row.Quantity,
			UnitPrice:   row.UnitPrice,
			TaxRate:     row.TaxRate,
			LineTotal:   row.LineTotal,
		})
	}
	return out, nil
}

// List lista facturas de la empresa, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	b := psql.Select(invoiceColumns...).
		From("invoices").
		Where(sq.Eq{"company_id": companyID}).
		OrderBy("created_at DESC", "id")
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": f.Status})
	}
	if f.ClientID != "" {
		b = b.Where(sq.Eq{"client_id": f.ClientID})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []invoiceRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	out := make([]*entity.Invoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// Update escribe solo las columnas presentes en el patch; los totales únicamente cuando
// se reemplazaron las líneas. La columna number no se toca.
func (r *InvoiceRepo) Update(ctx context.Context, companyID, id string, p repository.InvoicePatch) error {
	query, args, err := invoiceUpdateBuilder(companyID, id, p).ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func invoiceUpdateBuilder(companyID, id string, p repository.InvoicePatch) sq.UpdateBuilder {
	set := map[string]any{"updated_at": p.UpdatedAt}
	if p.ClientID != nil {
		set["client_id"] = *p.ClientID
	}
	if p.DueDate != nil {
		set["due_date"] = *p.DueDate
	}
	if p.Totals != nil {
		set["subtotal"] = p.Totals.Subtotal
		set["tax_amount"] = p.Totals.TaxAmount
		set["total"] = p.Totals.Total
	}
	return psql.Update("invoices").
		SetMap(set).
		Where(sq.Eq{"id": id, "company_id": companyID})
}

// UpdateStatus cambia el estado de la factura.
func (r *InvoiceRepo) UpdateStatus(ctx context.Context, companyID, id, status string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE invoices SET status = $3, updated_at = now() WHERE id = $1 AND company_id = $2`,
		id, companyID, status,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// Delete elimina la factura; las líneas caen por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
