package entity

import "time"

// Valores por defecto al aprovisionar una empresa nueva.
const (
	DefaultCompanyName   = "My Company"
	DefaultInvoicePrefix = "FAC-"
	DefaultCountry       = "FR"
)

// Company representa una organización/tenant del sistema.
// NextInvoiceNumber es el siguiente consecutivo a emitir; solo avanza al emitir una factura.
type Company struct {
	ID                string
	Name              string
	Email             string
	Address           string
	City              string
	ZipCode           string
	Country           string
	Siret             string
	TVANumber         string // número de IVA intracomunitario
	LogoURL           string
	InvoicePrefix     string
	NextInvoiceNumber int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
