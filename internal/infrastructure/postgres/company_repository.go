package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (usable con pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, name, email, address, city, zip_code, country, siret, tva_number, logo_url,
	invoice_prefix, next_invoice_number, created_at, updated_at`

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Address, c.City, c.ZipCode, c.Country, c.Siret, c.TVANumber, c.LogoURL,
		c.InvoicePrefix, c.NextInvoiceNumber, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	var c entity.Company
	err := r.q.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Address, &c.City, &c.ZipCode, &c.Country, &c.Siret, &c.TVANumber, &c.LogoURL,
		&c.InvoicePrefix, &c.NextInvoiceNumber, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}

// Patch actualiza solo los campos presentes. El contador no puede retroceder:
// la condición va en el WHERE para que la comprobación y la escritura sean atómicas.
func (r *CompanyRepo) Patch(ctx context.Context, id string, p repository.CompanyPatch) error {
	set := map[string]any{}
	put := func(col string, v *string) {
		if v != nil {
			set[col] = *v
		}
	}
	put("name", p.Name)
	put("email", p.Email)
	put("address", p.Address)
	put("city", p.City)
	put("zip_code", p.ZipCode)
	put("country", p.Country)
	put("siret", p.Siret)
	put("tva_number", p.TVANumber)
	put("logo_url", p.LogoURL)
	put("invoice_prefix", p.InvoicePrefix)
	if p.NextInvoiceNumber != nil {
		set["next_invoice_number"] = *p.NextInvoiceNumber
	}
	if len(set) == 0 {
		return nil
	}

	b := psql.Update("companies").
		SetMap(set).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id})
	if p.NextInvoiceNumber != nil {
		b = b.Where(sq.LtOrEq{"next_invoice_number": *p.NextInvoiceNumber})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("patch company: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("patch company: %w", err)
	}
	if !exists {
		return domain.ErrCompanyNotFound
	}
	return fmt.Errorf("%w: nextInvoiceNumber no puede ser menor que el contador actual", domain.ErrConflict)
}

// IncrementInvoiceCounter avanza el contador con un único UPDATE ... RETURNING: el bloqueo de fila
// serializa las emisiones concurrentes de la misma empresa y cada una ve un valor distinto.
func (r *CompanyRepo) IncrementInvoiceCounter(ctx context.Context, companyID string) (int64, string, error) {
	const query = `
		UPDATE companies
		SET next_invoice_number = next_invoice_number + 1, updated_at = now()
		WHERE id = $1
		RETURNING next_invoice_number - 1, invoice_prefix`
	var (
		seq    int64
		prefix string
	)
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&seq, &prefix); err != nil {
		if isNoRows(err) {
			return 0, "", domain.ErrCompanyNotFound
		}
		return 0, "", fmt.Errorf("increment invoice counter: %w", err)
	}
	return seq, prefix, nil
}
