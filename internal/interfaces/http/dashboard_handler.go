package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturio/facturio-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	handlerBase
	uc dashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc dashboardService) *DashboardHandler {
	return &DashboardHandler{handlerBase: newHandlerBase(), uc: uc}
}

// GetStats godoc
// @Summary      Indicadores del dashboard
// @Description  Ingresos cobrados del mes (con variación frente al mes anterior),
// @Description  facturas pendientes y número de clientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}

// GetRevenue godoc
// @Summary      Serie de ingresos cobrados
// @Description  Agrupa los totales de facturas PAID por día, mes o año; los huecos salen a 0.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        startDate  query  string  false  "Inicio (YYYY-MM-DD o RFC3339). Default: 1 de enero del año actual."
// @Param        endDate    query  string  false  "Fin exclusivo. Default: 1 de enero del año siguiente."
// @Param        interval   query  string  false  "day | month | year"  default(month)
// @Success      200  {object}  dto.RevenueSeriesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/revenue [get]
func (h *DashboardHandler) GetRevenue(c *fiber.Ctx) error {
	var q dto.RevenueQuery
	if err := h.bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	series, err := h.uc.GetRevenue(c.UserContext(), GetCompanyID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(series)
}
