package repository

import (
	"context"
	"time"
)

// RevenueRow importe de una factura pagada en una fecha (crudo, sin agrupar).
type RevenueRow struct {
	Date   time.Time
	Amount int64
}

// AnalyticsRepository define las consultas de lectura para el dashboard.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// SumRevenue suma el total de las facturas con estado status y fecha en [start, end).
	// Usa COALESCE para devolver cero si no hay facturas en el período.
	SumRevenue(ctx context.Context, companyID, status string, start, end time.Time) (int64, error)

	// CountInvoicesByStatus cuenta las facturas de la empresa en cualquiera de los estados dados.
	CountInvoicesByStatus(ctx context.Context, companyID string, statuses []string) (int64, error)

	// CountClients cuenta los clientes de la empresa.
	CountClients(ctx context.Context, companyID string) (int64, error)

	// ListRevenue devuelve fecha e importe de las facturas con estado status en [start, end), por fecha.
	ListRevenue(ctx context.Context, companyID, status string, start, end time.Time) ([]RevenueRow, error)
}
