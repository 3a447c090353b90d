package usecase

import (
	"context"

	"github.com/facturio/facturio-api/internal/domain/repository"
)

// SettingsTxRunner aplica los cambios de empresa y perfil en una sola transacción.
type SettingsTxRunner interface {
	RunSettings(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}
