// Package analytics contiene los casos de uso del dashboard: KPIs del mes y serie de ingresos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

// DashboardUseCase genera los KPIs y la serie de ingresos cobrados.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// GetStats construye el DashboardStatsDTO para la empresa indicada.
//
// Cuatro consultas en paralelo:
//  1. ingresos PAID del mes en curso
//  2. ingresos PAID del mes anterior
//  3. facturas pendientes (SENT, FINALIZED, OVERDUE)
//  4. clientes de la empresa
func (uc *DashboardUseCase) GetStats(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error) {
	now := uc.now()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextStart := currentStart.AddDate(0, 1, 0)
	lastStart := currentStart.AddDate(0, -1, 0)

	var current, last, pending, clients int64

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		v, err := uc.analyticsRepo.SumRevenue(ctx, companyID, entity.InvoiceStatusPaid, currentStart, nextStart)
		if err != nil {
			return fmt.Errorf("dashboard: ingresos del mes: %w", err)
		}
		current = v
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, err := uc.analyticsRepo.SumRevenue(ctx, companyID, entity.InvoiceStatusPaid, lastStart, currentStart)
		if err != nil {
			return fmt.Errorf("dashboard: ingresos del mes anterior: %w", err)
		}
		last = v
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, err := uc.analyticsRepo.CountInvoicesByStatus(ctx, companyID, entity.PendingInvoiceStatuses)
		if err != nil {
			return fmt.Errorf("dashboard: facturas pendientes: %w", err)
		}
		pending = v
		return nil
	})
	p.Go(func(ctx context.Context) error {
		v, err := uc.analyticsRepo.CountClients(ctx, companyID)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		clients = v
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		Revenue: dto.RevenueStatDTO{
			Amount:           current,
			PercentageChange: PercentageChange(current, last),
		},
		PendingInvoices: dto.CountStatDTO{Count: pending},
		ActiveClients:   dto.CountStatDTO{Count: clients},
	}, nil
}

// PercentageChange variación redondeada de previous a current; los medios van hacia +∞ (-52.5 → -52).
// Sin base (previous = 0) devuelve 100 si hubo ingresos y 0 si no.
func PercentageChange(current, previous int64) int64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	cur := decimal.NewFromInt(current)
	prev := decimal.NewFromInt(previous)
	pct := cur.Sub(prev).Mul(decimal.NewFromInt(100)).Div(prev)
	return pct.Add(decimal.New(5, -1)).Floor().IntPart()
}

// GetRevenue devuelve la serie de ingresos PAID entre startDate y endDate (por defecto el año en curso),
// agrupada por día, mes o año, con los huecos a cero.
func (uc *DashboardUseCase) GetRevenue(ctx context.Context, companyID string, q dto.RevenueQuery) (*dto.RevenueSeriesDTO, error) {
	now := uc.now()
	loc := now.Location()

	interval := q.Interval
	if interval == "" {
		interval = dto.IntervalMonth
	}
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0)
	if q.StartDate != "" {
		t, err := ParseDate(q.StartDate, loc)
		if err != nil {
			return nil, err
		}
		start = t
	}
	if q.EndDate != "" {
		t, err := ParseDate(q.EndDate, loc)
		if err != nil {
			return nil, err
		}
		end = t
	}
	if !end.After(start) {
		return nil, fmt.Errorf("%w: endDate debe ser posterior a startDate", domain.ErrInvalidInput)
	}

	series, err := NewSeries(interval, start, end)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.ListRevenue(ctx, companyID, entity.InvoiceStatusPaid, start, end)
	if err != nil {
		return nil, fmt.Errorf("dashboard: serie de ingresos: %w", err)
	}
	for _, r := range rows {
		series.Add(r.Date.In(loc), r.Amount)
	}

	return &dto.RevenueSeriesDTO{
		Total:    series.Total(),
		Data:     series.Points(),
		Interval: interval,
	}, nil
}
