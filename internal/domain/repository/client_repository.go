package repository

import (
	"context"

	"github.com/facturio/facturio-api/internal/domain/entity"
)

// ClientFilter filtros de listado de clientes.
type ClientFilter struct {
	Search string // coincidencia parcial en nombre o email
	Limit  int
	Offset int
}

// ClientRepository define el puerto de persistencia para Client.
// Todas las operaciones van acotadas a companyID; un cliente de otra empresa no existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Client, error)
	// GetByIDs devuelve los clientes encontrados; los ids ajenos a la empresa se ignoran.
	GetByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.Client, error)
	List(ctx context.Context, companyID string, filter ClientFilter) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// Delete devuelve domain.ErrClientNotFound si no se borró ninguna fila.
	Delete(ctx context.Context, companyID, id string) error
}
