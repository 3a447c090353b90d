package invoicing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
)

// Precisión de las columnas invoice_items.quantity NUMERIC(14,4) y tax_rate NUMERIC(6,3).
const (
	QuantityScale = 4
	TaxRateScale  = 3
)

var (
	maxQuantity  = decimal.New(1, 10) // exclusivo
	maxTaxRate   = decimal.NewFromInt(1000)
	maxLineTotal = decimal.NewFromInt(math.MaxInt64)
)

// ValidateItems comprueba las líneas antes de consumir un consecutivo.
// Devuelve domain.ErrInvalidInput envolviendo todos los problemas encontrados.
func ValidateItems(items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la factura debe tener al menos una línea", domain.ErrInvalidInput)
	}
	var errs []error
	for i, it := range items {
		if it == nil {
			errs = append(errs, fmt.Errorf("línea %d: vacía", i))
			continue
		}
		if strings.TrimSpace(it.Description) == "" {
			errs = append(errs, fmt.Errorf("línea %d: descripción obligatoria", i))
		}
		if !it.Quantity.IsPositive() {
			errs = append(errs, fmt.Errorf("línea %d: la cantidad debe ser mayor que 0 (%s)", i, it.Quantity.String()))
		} else if !fits(it.Quantity, QuantityScale, maxQuantity) {
			errs = append(errs, fmt.Errorf("línea %d: la cantidad admite %d decimales y debe ser menor que %s (%s)",
				i, QuantityScale, maxQuantity.String(), it.Quantity.String()))
		} else if it.UnitPrice > 0 && LineTotal(it).GreaterThan(maxLineTotal) {
			errs = append(errs, fmt.Errorf("línea %d: el importe de la línea es demasiado grande", i))
		}
		if it.UnitPrice < 0 {
			errs = append(errs, fmt.Errorf("línea %d: el precio unitario no puede ser negativo (%d)", i, it.UnitPrice))
		}
		if it.TaxRate.IsNegative() {
			errs = append(errs, fmt.Errorf("línea %d: el tipo de IVA no puede ser negativo (%s)", i, it.TaxRate.String()))
		} else if !fits(it.TaxRate, TaxRateScale, maxTaxRate) {
			errs = append(errs, fmt.Errorf("línea %d: el tipo de IVA admite %d decimales y debe ser menor que %s (%s)",
				i, TaxRateScale, maxTaxRate.String(), it.TaxRate.String()))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}

// fits indica si d se guarda sin pérdida con scale decimales y es menor que limit.
func fits(d decimal.Decimal, scale int32, limit decimal.Decimal) bool {
	return d.Equal(d.Truncate(scale)) && d.LessThan(limit)
}
