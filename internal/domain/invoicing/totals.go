// Package invoicing contiene las reglas puras de facturación: validación de líneas,
// cálculo de totales en céntimos y formato del número de factura.
package invoicing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/facturio/facturio-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals montos agregados de una factura, en céntimos.
type Totals struct {
	Subtotal  int64
	TaxAmount int64
	Total     int64
}

// LineTotal = UnitPrice × Quantity, sin redondear.
func LineTotal(item *entity.InvoiceItem) decimal.Decimal {
	return decimal.NewFromInt(item.UnitPrice).Mul(item.Quantity)
}

// LineTax = LineTotal × TaxRate / 100, sin redondear.
func LineTax(item *entity.InvoiceItem) decimal.Decimal {
	return LineTotal(item).Mul(item.TaxRate).Div(hundred)
}

// ComputeTotals suma los valores crudos de cada línea y redondea una sola vez los agregados
// (mitad alejándose de cero). Total = Subtotal + TaxAmount.
// No valida: llamar a ValidateItems antes.
func ComputeTotals(items []*entity.InvoiceItem) Totals {
	sumNet := decimal.Zero
	sumTax := decimal.Zero
	for _, it := range items {
		sumNet = sumNet.Add(LineTotal(it))
		sumTax = sumTax.Add(LineTax(it))
	}
	subtotal := sumNet.Round(0).IntPart()
	tax := sumTax.Round(0).IntPart()
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal + tax,
	}
}

// FillLineTotals asigna LineTotal (redondeado) y Position a cada línea para persistirlas.
func FillLineTotals(items []*entity.InvoiceItem) {
	for i, it := range items {
		it.Position = i
		it.LineTotal = LineTotal(it).Round(0).IntPart()
	}
}

// FormatNumber compone "{prefix}{year}-{seq}" con el consecutivo rellenado a 3 dígitos como mínimo.
func FormatNumber(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s%d-%03d", prefix, year, seq)
}
