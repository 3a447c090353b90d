package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facturio/facturio-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SumRevenue suma el total (céntimos) de las facturas con el estado dado en [start, end).
func (r *AnalyticsRepo) SumRevenue(ctx context.Context, companyID, status string, start, end time.Time) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0)::BIGINT
	FROM invoices
	WHERE company_id = $1
	  AND status     = $2
	  AND date      >= $3
	  AND date       < $4`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, companyID, status, start, end).Scan(&sum); err != nil {
		return 0, fmt.Errorf("analytics.SumRevenue: %w", err)
	}
	return sum, nil
}

// CountInvoicesByStatus cuenta las facturas en cualquiera de los estados indicados.
func (r *AnalyticsRepo) CountInvoicesByStatus(ctx context.Context, companyID string, statuses []string) (int64, error) {
	const query = `SELECT COUNT(*) FROM invoices WHERE company_id = $1 AND status = ANY($2)`

	var n int64
	if err := r.pool.QueryRow(ctx, query, companyID, statuses).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountInvoicesByStatus: %w", err)
	}
	return n, nil
}

// CountClients cuenta los clientes de la empresa.
func (r *AnalyticsRepo) CountClients(ctx context.Context, companyID string) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE company_id = $1`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountClients: %w", err)
	}
	return n, nil
}

// ListRevenue devuelve fecha y total de cada factura con el estado dado en [start, end), por fecha.
func (r *AnalyticsRepo) ListRevenue(ctx context.Context, companyID, status string, start, end time.Time) ([]repository.RevenueRow, error) {
	const query = `
	SELECT date, total
	FROM invoices
	WHERE company_id = $1
	  AND status     = $2
	  AND date      >= $3
	  AND date       < $4
	ORDER BY date`

	rows, err := r.pool.Query(ctx, query, companyID, status, start, end)
	if err != nil {
		return nil, fmt.Errorf("analytics.ListRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.RevenueRow
	for rows.Next() {
		var row repository.RevenueRow
		if err := rows.Scan(&row.Date, &row.Amount); err != nil {
			return nil, fmt.Errorf("analytics.ListRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
