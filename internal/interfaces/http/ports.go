package http

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/application/tenant"
	"github.com/facturio/facturio-api/internal/domain/entity"
	pkgvalidator "github.com/facturio/facturio-api/pkg/validator"
)

// Contratos mínimos que necesitan los handlers. Los implementan los casos de uso
// de internal/application; en tests se sustituyen por stubs.

type tokenVerifier interface {
	Verify(ctx context.Context, token string) (entity.Principal, error)
}

type identityResolver interface {
	Resolve(ctx context.Context, p entity.Principal) (*tenant.Identity, error)
}

type clientService interface {
	Create(ctx context.Context, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.ClientResponse, error)
	List(ctx context.Context, companyID string, q dto.ClientListQuery) ([]*dto.ClientResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type invoiceService interface {
	Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error)
	List(ctx context.Context, companyID string, q dto.InvoiceListQuery) ([]*dto.InvoiceResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.InvoiceResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type dashboardService interface {
	GetStats(ctx context.Context, companyID string) (*dto.DashboardStatsDTO, error)
	GetRevenue(ctx context.Context, companyID string, q dto.RevenueQuery) (*dto.RevenueSeriesDTO, error)
}

type settingsService interface {
	Get(ctx context.Context, userID, companyID string) (*dto.SettingsResponse, error)
	Update(ctx context.Context, userID, companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

// handlerBase comparte el validador entre handlers.
type handlerBase struct {
	validate *validator.Validate
}

func newHandlerBase() handlerBase {
	return handlerBase{validate: pkgvalidator.New()}
}
