package dto

// Intervalos de agregación de la serie de ingresos.
const (
	IntervalDay   = "day"
	IntervalMonth = "month"
	IntervalYear  = "year"
)

// DashboardStatsDTO respuesta de GET /api/dashboard/stats. Montos en céntimos.
type DashboardStatsDTO struct {
	Revenue         RevenueStatDTO `json:"revenue"`
	PendingInvoices CountStatDTO   `json:"pendingInvoices"`
	ActiveClients   CountStatDTO   `json:"activeClients"`
}

// RevenueStatDTO ingresos cobrados del mes en curso y variación porcentual frente al mes anterior.
type RevenueStatDTO struct {
	Amount           int64 `json:"amount"`
	PercentageChange int64 `json:"percentageChange"`
}

// CountStatDTO contador simple.
type CountStatDTO struct {
	Count int64 `json:"count"`
}

// RevenueQuery parámetros de GET /api/dashboard/revenue (fechas ISO 8601).
type RevenueQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
	Interval  string `query:"interval" validate:"omitempty,oneof=day month year"`
}

// RevenuePointDTO un punto de la serie.
type RevenuePointDTO struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// RevenueSeriesDTO serie de ingresos cobrados con huecos rellenados a cero.
type RevenueSeriesDTO struct {
	Total    int64             `json:"total"`
	Data     []RevenuePointDTO `json:"data"`
	Interval string            `json:"interval"`
}
