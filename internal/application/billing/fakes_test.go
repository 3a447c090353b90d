package billing

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

// memStore simula la base de datos: un mutex serializa las escrituras como lo haría el bloqueo de fila.
type memStore struct {
	mu        sync.Mutex
	companies map[string]*entity.Company
	clients   map[string]*entity.Client
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
}

func newMemStore() *memStore {
	return &memStore{
		companies: map[string]*entity.Company{},
		clients:   map[string]*entity.Client{},
		invoices:  map[string]*entity.Invoice{},
		items:     map[string][]*entity.InvoiceItem{},
	}
}

func (s *memStore) counter(companyID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.companies[companyID].NextInvoiceNumber
}

// ── Company ──────────────────────────────────────────────────────────────────

type memCompanyRepo struct{ s *memStore }

var _ repository.CompanyRepository = (*memCompanyRepo)(nil)

func (r *memCompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.companies[c.ID] = &cp
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCompanyRepo) Patch(_ context.Context, id string, p repository.CompanyPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return domain.ErrCompanyNotFound
	}
	if p.InvoicePrefix != nil {
		c.InvoicePrefix = *p.InvoicePrefix
	}
	if p.NextInvoiceNumber != nil {
		c.NextInvoiceNumber = *p.NextInvoiceNumber
	}
	return nil
}

func (r *memCompanyRepo) IncrementInvoiceCounter(_ context.Context, companyID string) (int64, string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[companyID]
	if !ok {
		return 0, "", domain.ErrCompanyNotFound
	}
	seq := c.NextInvoiceNumber
	c.NextInvoiceNumber++
	return seq, c.InvoicePrefix, nil
}

// ── Client ───────────────────────────────────────────────────────────────────

type memClientRepo struct{ s *memStore }

var _ repository.ClientRepository = (*memClientRepo)(nil)

func (r *memClientRepo) Create(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) GetByID(_ context.Context, companyID, id string) (*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memClientRepo) GetByIDs(ctx context.Context, companyID string, ids []string) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, id := range ids {
		c, _ := r.GetByID(ctx, companyID, id)
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memClientRepo) List(_ context.Context, companyID string, f repository.ClientFilter) ([]*entity.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.s.clients {
		if c.CompanyID != companyID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memClientRepo) Update(_ context.Context, c *entity.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	cp := *c
	r.s.clients[c.ID] = &cp
	return nil
}

func (r *memClientRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrClientNotFound
	}
	for _, inv := range r.s.invoices {
		if inv.ClientID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.clients, id)
	return nil
}

// ── Invoice ──────────────────────────────────────────────────────────────────

type memInvoiceRepo struct {
	s          *memStore
	failCreate error
}

var _ repository.InvoiceRepository = (*memInvoiceRepo)(nil)

func (r *memInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) CreateItems(_ context.Context, invoiceID string, items []*entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[invoiceID] = append(r.s.items[invoiceID], items...)
	return nil
}

func (r *memInvoiceRepo) ReplaceItems(_ context.Context, invoiceID string, items []*entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[invoiceID] = append([]*entity.InvoiceItem(nil), items...)
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInvoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.InvoiceItem(nil), r.s.items[invoiceID]...), nil
}

func (r *memInvoiceRepo) List(_ context.Context, companyID string, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.ClientID != "" && inv.ClientID != f.ClientID {
			continue
		}
		cp := *inv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

func (r *memInvoiceRepo) Update(_ context.Context, companyID, id string, p repository.InvoicePatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrInvoiceNotFound
	}
	if p.ClientID != nil {
		inv.ClientID = *p.ClientID
	}
	if p.DueDate != nil {
		d := *p.DueDate
		inv.DueDate = &d
	}
	if p.Totals != nil {
		inv.Subtotal = p.Totals.Subtotal
		inv.TaxAmount = p.Totals.TaxAmount
		inv.Total = p.Totals.Total
	}
	inv.UpdatedAt = p.UpdatedAt
	return nil
}

// staleInvoiceRepo devuelve en la primera lectura una copia tomada antes, como una petición
// concurrente que leyó la factura antes de que otra la modificara.
type staleInvoiceRepo struct {
	*memInvoiceRepo
	mu       sync.Mutex
	snapshot *entity.Invoice
}

func (r *staleInvoiceRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	snap := r.snapshot
	r.snapshot = nil
	r.mu.Unlock()
	if snap != nil {
		cp := *snap
		return &cp, nil
	}
	return r.memInvoiceRepo.GetByID(ctx, companyID, id)
}

func (r *memInvoiceRepo) UpdateStatus(_ context.Context, companyID, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrInvoiceNotFound
	}
	inv.Status = status
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return domain.ErrInvoiceNotFound
	}
	delete(r.s.invoices, id)
	delete(r.s.items, id)
	return nil
}

// memTxRunner restaura los contadores si fn falla (rollback del incremento).
type memTxRunner struct {
	s        *memStore
	invoices *memInvoiceRepo
}

func (t *memTxRunner) RunInvoicing(ctx context.Context, fn func(repository.CompanyRepository, repository.InvoiceRepository) error) error {
	t.s.mu.Lock()
	snapshot := make(map[string]int64, len(t.s.companies))
	for id, c := range t.s.companies {
		snapshot[id] = c.NextInvoiceNumber
	}
	t.s.mu.Unlock()

	if err := fn(&memCompanyRepo{s: t.s}, t.invoices); err != nil {
		t.s.mu.Lock()
		for id, n := range snapshot {
			t.s.companies[id].NextInvoiceNumber = n
		}
		t.s.mu.Unlock()
		return err
	}
	return nil
}
