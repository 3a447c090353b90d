package tenant

import (
	"context"

	"github.com/facturio/facturio-api/internal/domain/repository"
)

// ProvisioningTxRunner crea empresa y usuario propietario en una sola transacción.
type ProvisioningTxRunner interface {
	RunProvisioning(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
