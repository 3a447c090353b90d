package dto

// DefaultLimit tamaño de página cuando no se indica limit.
const DefaultLimit = 20

// NormalizePage aplica valores por defecto si limit/offset son cero o negativos.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
