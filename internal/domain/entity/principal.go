package entity

// Principal identidad autenticada por el proveedor externo, resuelta una vez por request.
// ID es el subject del token; Email puede venir vacío en tokens de servicio.
type Principal struct {
	ID    string
	Email string
}
