package dto

import "time"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Email     string `json:"email" validate:"omitempty,email"`
	Address   string `json:"address" validate:"max=300"`
	City      string `json:"city" validate:"max=120"`
	ZipCode   string `json:"zipCode" validate:"max=20"`
	Country   string `json:"country" validate:"omitempty,len=2"` // ISO 3166-1 alpha-2; por defecto FR
	TVANumber string `json:"tvaNumber" validate:"max=32"`
}

// UpdateClientRequest body para PATCH /api/clients/:id (campos opcionales).
type UpdateClientRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Address   *string `json:"address" validate:"omitempty,max=300"`
	City      *string `json:"city" validate:"omitempty,max=120"`
	ZipCode   *string `json:"zipCode" validate:"omitempty,max=20"`
	Country   *string `json:"country" validate:"omitempty,len=2"`
	TVANumber *string `json:"tvaNumber" validate:"omitempty,max=32"`
}

// ClientListQuery parámetros de GET /api/clients.
type ClientListQuery struct {
	Limit  int    `query:"limit" validate:"min=0,max=100"`
	Offset int    `query:"offset" validate:"min=0"`
	Search string `query:"search"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	ZipCode   string    `json:"zipCode"`
	Country   string    `json:"country"`
	TVANumber string    `json:"tvaNumber"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
