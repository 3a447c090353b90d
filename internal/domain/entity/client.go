package entity

import "time"

// Client representa un cliente de la empresa (destinatario de facturas).
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Address   string
	City      string
	ZipCode   string
	Country   string
	TVANumber string
	CreatedAt time.Time
	UpdatedAt time.Time
}
