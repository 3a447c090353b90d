package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

// SettingsUseCase lectura y edición del perfil del usuario y de los datos de su empresa.
type SettingsUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	txRunner  SettingsTxRunner
}

// NewSettingsUseCase construye el caso de uso con los puertos de persistencia.
func NewSettingsUseCase(users repository.UserRepository, companies repository.CompanyRepository, txRunner SettingsTxRunner) *SettingsUseCase {
	return &SettingsUseCase{users: users, companies: companies, txRunner: txRunner}
}

// Get devuelve usuario y empresa.
func (uc *SettingsUseCase) Get(ctx context.Context, userID, companyID string) (*dto.SettingsResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return &dto.SettingsResponse{
		User:    entityToUserSettings(user),
		Company: *entityToCompanyResponse(company),
	}, nil
}

// Update aplica los campos presentes en una transacción: si el patch de la empresa falla
// (p. ej. nextInvoiceNumber por debajo del contador, domain.ErrConflict) el perfil tampoco cambia.
func (uc *SettingsUseCase) Update(ctx context.Context, userID, companyID string, in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var patch repository.CompanyPatch
	if in.Company != nil {
		p, err := toCompanyPatch(in.Company)
		if err != nil {
			return nil, err
		}
		patch = p
	}
	profile := in.User != nil && (in.User.FirstName != nil || in.User.LastName != nil)
	if patch.IsEmpty() && !profile {
		return uc.Get(ctx, userID, companyID)
	}

	err := uc.txRunner.RunSettings(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if !patch.IsEmpty() {
			if err := companyRepo.Patch(ctx, companyID, patch); err != nil {
				return err
			}
		}
		if profile {
			return userRepo.UpdateProfile(ctx, userID, trimPtr(in.User.FirstName), trimPtr(in.User.LastName))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, userID, companyID)
}

func toCompanyPatch(in *dto.UpdateCompanySettings) (repository.CompanyPatch, error) {
	p := repository.CompanyPatch{
		Name:          trimPtr(in.Name),
		Email:         trimPtr(in.Email),
		Address:       in.Address,
		City:          in.City,
		ZipCode:       in.ZipCode,
		Siret:         trimPtr(in.Siret),
		TVANumber:     trimPtr(in.TVANumber),
		LogoURL:       trimPtr(in.LogoURL),
		InvoicePrefix: in.InvoicePrefix,
	}
	if p.Name != nil && *p.Name == "" {
		return p, fmt.Errorf("%w: el nombre de la empresa no puede estar vacío", domain.ErrInvalidInput)
	}
	if in.Country != nil {
		c := strings.ToUpper(strings.TrimSpace(*in.Country))
		p.Country = &c
	}
	if in.NextInvoiceNumber != nil {
		if *in.NextInvoiceNumber < 1 {
			return p, fmt.Errorf("%w: nextInvoiceNumber debe ser >= 1", domain.ErrInvalidInput)
		}
		p.NextInvoiceNumber = in.NextInvoiceNumber
	}
	return p, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func entityToUserSettings(u *entity.User) dto.UserSettingsResponse {
	return dto.UserSettingsResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		Email:             c.Email,
		Address:           c.Address,
		City:              c.City,
		ZipCode:           c.ZipCode,
		Country:           c.Country,
		Siret:             c.Siret,
		TVANumber:         c.TVANumber,
		LogoURL:           c.LogoURL,
		InvoicePrefix:     c.InvoicePrefix,
		NextInvoiceNumber: c.NextInvoiceNumber,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
