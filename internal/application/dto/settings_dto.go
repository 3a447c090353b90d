package dto

import "time"

// UserSettingsResponse perfil del usuario autenticado.
type UserSettingsResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// CompanyResponse datos de la empresa del usuario.
type CompanyResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	ZipCode           string    `json:"zipCode"`
	Country           string    `json:"country"`
	Siret             string    `json:"siret"`
	TVANumber         string    `json:"tvaNumber"`
	LogoURL           string    `json:"logoUrl"`
	InvoicePrefix     string    `json:"invoicePrefix"`
	NextInvoiceNumber int64     `json:"nextInvoiceNumber"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// SettingsResponse respuesta de GET /api/settings.
type SettingsResponse struct {
	User    UserSettingsResponse `json:"user"`
	Company CompanyResponse      `json:"company"`
}

// UpdateUserSettings campos opcionales del perfil.
type UpdateUserSettings struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

// UpdateCompanySettings campos opcionales de la empresa.
type UpdateCompanySettings struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email             *string `json:"email" validate:"omitempty,email"`
	Address           *string `json:"address" validate:"omitempty,max=300"`
	City              *string `json:"city" validate:"omitempty,max=120"`
	ZipCode           *string `json:"zipCode" validate:"omitempty,max=20"`
	Country           *string `json:"country" validate:"omitempty,len=2"`
	Siret             *string `json:"siret" validate:"omitempty,max=14"`
	TVANumber         *string `json:"tvaNumber" validate:"omitempty,max=32"`
	LogoURL           *string `json:"logoUrl" validate:"omitempty,url"`
	InvoicePrefix     *string `json:"invoicePrefix" validate:"omitempty,max=20"`
	NextInvoiceNumber *int64  `json:"nextInvoiceNumber" validate:"omitempty,min=1"`
}

// UpdateSettingsRequest body para PATCH /api/settings.
type UpdateSettingsRequest struct {
	User    *UpdateUserSettings    `json:"user,omitempty"`
	Company *UpdateCompanySettings `json:"company,omitempty"`
}
