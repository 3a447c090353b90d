package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes (facturación).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(ctx context.Context, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	country := strings.ToUpper(strings.TrimSpace(in.Country))
	if country == "" {
		country = entity.DefaultCountry
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Address:   in.Address,
		City:      in.City,
		ZipCode:   in.ZipCode,
		Country:   country,
		TVANumber: in.TVANumber,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Get devuelve un cliente de la empresa.
func (uc *ClientUseCase) Get(ctx context.Context, companyID, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes de la empresa ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context, companyID string, q dto.ClientListQuery) ([]*dto.ClientResponse, error) {
	limit, offset := dto.NormalizePage(q.Limit, q.Offset)
	list, err := uc.repo.List(ctx, companyID, repository.ClientFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return lo.Map(list, func(c *entity.Client, _ int) *dto.ClientResponse {
		return toClientResponse(c)
	}), nil
}

// Update aplica los campos presentes en el request.
func (uc *ClientUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		client.Name = name
	}
	if in.Email != nil {
		client.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.ZipCode != nil {
		client.ZipCode = *in.ZipCode
	}
	if in.Country != nil {
		client.Country = strings.ToUpper(strings.TrimSpace(*in.Country))
	}
	if in.TVANumber != nil {
		client.TVANumber = *in.TVANumber
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina el cliente. Con facturas asociadas devuelve domain.ErrConflict.
func (uc *ClientUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}
