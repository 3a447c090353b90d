package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// clientRow fila de la tabla clients para pgxscan.
type clientRow struct {
	ID        string    `db:"id"`
	CompanyID string    `db:"company_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Address   string    `db:"address"`
	City      string    `db:"city"`
	ZipCode   string    `db:"zip_code"`
	Country   string    `db:"country"`
	TVANumber string    `db:"tva_number"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (c clientRow) toEntity() *entity.Client {
	return &entity.Client{
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

var clientColumns = []string{
	"id", "company_id", "name", "email", "address", "city", "zip_code", "country", "tva_number",
	"created_at", "updated_at",
}

func (r *ClientRepo) selectBuilder(companyID string) sq.SelectBuilder {
	return psql.Select(clientColumns...).From("clients").Where(sq.Eq{"company_id": companyID})
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query, args, err := psql.Insert("clients").
		Columns(clientColumns...).
		Values(c.ID, c.CompanyID, c.Name, c.Email, c.Address, c.City, c.ZipCode, c.Country, c.TVANumber,
			c.CreatedAt, c.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente de la empresa.
func (r *ClientRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Client, error) {
	query, args, err := r.selectBuilder(companyID).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row clientRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return row.toEntity(), nil
}

// GetByIDs obtiene varios clientes de la empresa de una vez.
func (r *ClientRepo) GetByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := r.selectBuilder(companyID).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return r.selectMany(ctx, query, args)
}

// List lista clientes de la empresa ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context, companyID string, f repository.ClientFilter) ([]*entity.Client, error) {
	b := r.selectBuilder(companyID).OrderBy("name", "id")
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		b = b.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"email": pattern}})
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
	return r.selectMany(ctx, query, args)
}

func (r *ClientRepo) selectMany(ctx context.Context, query string, args []any) ([]*entity.Client, error) {
	var rows []clientRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]*entity.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients
		SET name = $3, email = $4, address = $5, city = $6, zip_code = $7, country = $8, tva_number = $9, updated_at = $10
		WHERE id = $1 AND company_id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.Email, c.Address, c.City, c.ZipCode, c.Country, c.TVANumber, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Delete elimina un cliente. Si tiene facturas la FK lo impide y se devuelve domain.ErrConflict.
func (r *ClientRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el cliente tiene facturas", domain.ErrConflict)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
