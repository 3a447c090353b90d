package postgres

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/facturio-api/internal/domain/repository"
)

func TestClientListQuery(t *testing.T) {
	query, args, err := (&ClientRepo{}).selectBuilder("c-1").
		Where(sq.ILike{"name": "%martin%"}).
		Limit(20).
		ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "FROM clients WHERE company_id = $1 AND name ILIKE $2")
	assert.Equal(t, []interface{}{"c-1", "%martin%"}, args)
}

func TestCounterGuardUsesDollarPlaceholders(t *testing.T) {
	query, args, err := psql.Update("companies").
		Set("next_invoice_number", int64(40)).
		Where(sq.Eq{"id": "c-1"}).
		Where(sq.LtOrEq{"next_invoice_number": int64(40)}).
		ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE companies SET next_invoice_number = $1 WHERE id = $2 AND next_invoice_number <= $3", query)
	assert.Len(t, args, 3)
}

func TestInvoiceUpdateWritesTotalsOnlyWithItems(t *testing.T) {
	now := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 1, 0)

	query, args, err := invoiceUpdateBuilder("c-1", "i-1", repository.InvoicePatch{DueDate: &due, UpdatedAt: now}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE invoices SET due_date = $1, updated_at = $2 WHERE company_id = $3 AND id = $4", query)
	assert.Len(t, args, 4)

	query, _, err = invoiceUpdateBuilder("c-1", "i-1", repository.InvoicePatch{
		Totals:    &repository.InvoiceTotals{Subtotal: 5000, TaxAmount: 1000, Total: 6000},
		UpdatedAt: now,
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "UPDATE invoices SET subtotal = $1, tax_amount = $2, total = $3, updated_at = $4 WHERE company_id = $5 AND id = $6", query)
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%martin%", containsPattern("martin"))
	assert.Equal(t, `%50\%%`, containsPattern("50%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\tmp%`, containsPattern(`c:\tmp`))
}
