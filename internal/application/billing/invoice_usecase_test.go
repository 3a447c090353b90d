package billing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/facturio-api/internal/application/dto"
	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
)

const (
	testClientID      = "6f1c7f3e-0c1d-4b5e-8a9f-1c2d3e4f5a6b"
	otherCompanyID    = "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d"
	otherCompanyClnID = "11111111-2222-4333-8444-555555555555"
)

type invoiceFixture struct {
	store    *memStore
	invoices *memInvoiceRepo
	uc       *InvoiceUseCase
}

func newInvoiceFixture(t *testing.T, next int64) *invoiceFixture {
	t.Helper()
	s := newMemStore()
	seedCompany(t, s, next)
	ctx := context.Background()
	clients := &memClientRepo{s: s}
	require.NoError(t, clients.Create(ctx, &entity.Client{ID: testClientID, CompanyID: testCompanyID, Name: "Atelier Dupont", Country: "FR"}))
	require.NoError(t, clients.Create(ctx, &entity.Client{ID: otherCompanyClnID, CompanyID: otherCompanyID, Name: "Ajeno"}))

	invoices := &memInvoiceRepo{s: s}
	uc := NewInvoiceUseCase(&memTxRunner{s: s, invoices: invoices}, invoices, clients, &InvoiceIssuer{now: fixedClock(2025)})
	uc.now = fixedClock(2025)
	return &invoiceFixture{store: s, invoices: invoices, uc: uc}
}

func line(desc string, unitPrice int64, qty, rate string) dto.InvoiceItemRequest {
	return dto.InvoiceItemRequest{
		Description: desc,
		UnitPrice:   unitPrice,
		Quantity:    decimal.RequireFromString(qty),
		TaxRate:     decimal.RequireFromString(rate),
	}
}

func TestInvoiceCreate_NumberAndTotals(t *testing.T) {
	f := newInvoiceFixture(t, 7)

	out, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("Développement", 1000, "2", "20")},
	})
	require.NoError(t, err)

	assert.Equal(t, "FAC-2025-007", out.Number)
	assert.Equal(t, entity.InvoiceStatusDraft, out.Status)
	assert.Equal(t, int64(2000), out.Subtotal)
	assert.Equal(t, int64(400), out.TaxAmount)
	assert.Equal(t, int64(2400), out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(2000), out.Items[0].Total)
	require.NotNil(t, out.Client)
	assert.Equal(t, "Atelier Dupont", out.Client.Name)
	assert.Equal(t, int64(8), f.store.counter(testCompanyID))
}

func TestInvoiceCreate_InvalidItemDoesNotAdvanceCounter(t *testing.T) {
	f := newInvoiceFixture(t, 3)

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items: []dto.InvoiceItemRequest{
			line("Correcto", 1000, "1", "20"),
			line("Cantidad cero", 1000, "0", "20"),
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(3), f.store.counter(testCompanyID))
	assert.Empty(t, f.store.invoices)
}

func TestInvoiceCreate_ClientFromOtherCompany(t *testing.T) {
	f := newInvoiceFixture(t, 3)

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		ClientID: otherCompanyClnID,
		Items:    []dto.InvoiceItemRequest{line("Servicio", 1000, "1", "20")},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(3), f.store.counter(testCompanyID))
}

func TestInvoiceCreate_FailureAfterIncrementRollsBack(t *testing.T) {
	f := newInvoiceFixture(t, 10)
	f.invoices.failCreate = errors.New("insert falló")

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("Servicio", 1000, "1", "20")},
	})
	require.Error(t, err)
	assert.Equal(t, int64(10), f.store.counter(testCompanyID))
}

func TestInvoiceUpdate_WithoutItemsKeepsTotals(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("Servicio", 1000, "2", "20")},
	})
	require.NoError(t, err)

	due := fixedClock(2025)().AddDate(0, 1, 0)
	updated, err := f.uc.Update(ctx, testCompanyID, created.ID, dto.UpdateInvoiceRequest{DueDate: &due})
	require.NoError(t, err)

	assert.Equal(t, created.Number, updated.Number)
	assert.Equal(t, created.Subtotal, updated.Subtotal)
	assert.Equal(t, created.TaxAmount, updated.TaxAmount)
	assert.Equal(t, created.Total, updated.Total)
	assert.Len(t, updated.Items, 1)
	require.NotNil(t, updated.DueDate)
	assert.True(t, due.Equal(*updated.DueDate))
}

func TestInvoiceUpdate_WithItemsReplacesAndRecomputes(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items: []dto.InvoiceItemRequest{
			line("A", 1000, "2", "20"),
			line("B", 500, "1", "20"),
		},
	})
	require.NoError(t, err)

	updated, err := f.uc.Update(ctx, testCompanyID, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{line("C", 333, "3", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, created.Number, updated.Number, "el número nunca se regenera")
	assert.Equal(t, int64(999), updated.Subtotal)
	assert.Equal(t, int64(0), updated.TaxAmount)
	assert.Equal(t, int64(999), updated.Total)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "C", updated.Items[0].Description)
	assert.Equal(t, int64(2), f.store.counter(testCompanyID), "actualizar no consume consecutivos")
}

func TestInvoiceUpdate_StaleReadDoesNotRevertTotals(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("A", 1000, "2", "20")},
	})
	require.NoError(t, err)

	// la petición que solo cambia el vencimiento leyó la factura antes del reemplazo de líneas
	before, err := f.invoices.GetByID(ctx, testCompanyID, created.ID)
	require.NoError(t, err)
	stale := &staleInvoiceRepo{memInvoiceRepo: f.invoices, snapshot: before}
	dueOnly := NewInvoiceUseCase(&memTxRunner{s: f.store, invoices: f.invoices}, stale, &memClientRepo{s: f.store}, f.uc.issuer)
	dueOnly.now = fixedClock(2025)

	_, err = f.uc.Update(ctx, testCompanyID, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{line("B", 5000, "1", "20")},
	})
	require.NoError(t, err)

	due := fixedClock(2025)().AddDate(0, 1, 0)
	_, err = dueOnly.Update(ctx, testCompanyID, created.ID, dto.UpdateInvoiceRequest{DueDate: &due})
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, testCompanyID, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(5000), got.Items[0].UnitPrice)
	assert.Equal(t, int64(5000), got.Subtotal)
	assert.Equal(t, int64(1000), got.TaxAmount)
	assert.Equal(t, int64(6000), got.Total)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
}

func TestInvoiceUpdate_InvalidItemsKeepPreviousState(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("A", 1000, "2", "20")},
	})
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, testCompanyID, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.Get(ctx, testCompanyID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2400), got.Total)
	assert.Len(t, got.Items, 1)
}

func TestInvoiceGet_OtherCompanyIsNotFound(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("A", 1000, "1", "20")},
	})
	require.NoError(t, err)

	_, err = f.uc.Get(ctx, otherCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceList_AttachesClients(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
			ClientID: testClientID,
			Items:    []dto.InvoiceItemRequest{line("A", 1000, "1", "20")},
		})
		require.NoError(t, err)
	}

	list, err := f.uc.List(ctx, testCompanyID, dto.InvoiceListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, inv := range list {
		require.NotNil(t, inv.Client)
		assert.Equal(t, testClientID, inv.Client.ID)
	}

	empty, err := f.uc.List(ctx, otherCompanyID, dto.InvoiceListQuery{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestInvoiceStatusAndDelete(t *testing.T) {
	f := newInvoiceFixture(t, 1)
	ctx := context.Background()
	created, err := f.uc.Create(ctx, testCompanyID, dto.CreateInvoiceRequest{
		ClientID: testClientID,
		Items:    []dto.InvoiceItemRequest{line("A", 1000, "1", "20")},
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, testCompanyID, created.ID, "ARCHIVED")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := f.uc.UpdateStatus(ctx, testCompanyID, created.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, out.Status)

	err = f.uc.Delete(ctx, testCompanyID, created.ID)
	require.ErrorIs(t, err, domain.ErrConflict, "solo se borran borradores")

	_, err = f.uc.UpdateStatus(ctx, testCompanyID, created.ID, entity.InvoiceStatusDraft)
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, testCompanyID, created.ID))

	_, err = f.uc.Get(ctx, testCompanyID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
