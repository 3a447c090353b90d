package tenant

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facturio/facturio-api/internal/domain"
	"github.com/facturio/facturio-api/internal/domain/entity"
	"github.com/facturio/facturio-api/internal/domain/repository"
)

type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*entity.User
	lookups int
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

var _ repository.UserRepository = (*memUsers)(nil)

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.byID {
		if x.SupabaseID != "" && x.SupabaseID == u.SupabaseID {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}

func (m *memUsers) GetBySupabaseID(_ context.Context, sid string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups++
	for _, u := range m.byID {
		if u.SupabaseID == sid {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) BindSupabaseID(_ context.Context, userID, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[userID].SupabaseID = sid
	return nil
}

func (m *memUsers) UpdateProfile(context.Context, string, *string, *string) error { return nil }

type memCompanies struct {
	mu   sync.Mutex
	byID map[string]*entity.Company
}

var _ repository.CompanyRepository = (*memCompanies)(nil)

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[c.ID] = c
	return nil
}
func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id], nil
}
func (m *memCompanies) Patch(context.Context, string, repository.CompanyPatch) error { return nil }
func (m *memCompanies) IncrementInvoiceCounter(context.Context, string) (int64, string, error) {
	return 0, "", nil
}

type memTx struct {
	users     *memUsers
	companies *memCompanies
}

func (t *memTx) RunProvisioning(_ context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return fn(t.companies, t.users)
}

func newResolver() (*Resolver, *memUsers, *memCompanies) {
	users := newMemUsers()
	companies := &memCompanies{byID: map[string]*entity.Company{}}
	return NewResolver(users, &memTx{users: users, companies: companies}, time.Minute), users, companies
}

func TestResolve_ProvisionsOnFirstSight(t *testing.T) {
	r, users, companies := newResolver()
	ctx := context.Background()

	id, err := r.Resolve(ctx, entity.Principal{ID: "sub-1", Email: " Marie@Example.fr "})
	require.NoError(t, err)

	require.Contains(t, companies.byID, id.CompanyID)
	c := companies.byID[id.CompanyID]
	assert.Equal(t, entity.DefaultCompanyName, c.Name)
	assert.Equal(t, "FAC-", c.InvoicePrefix)
	assert.Equal(t, int64(1), c.NextInvoiceNumber)

	u := users.byID[id.UserID]
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleOwner, u.Role)
	assert.Equal(t, "marie@example.fr", u.Email)
	assert.Equal(t, "sub-1", u.SupabaseID)
}

func TestResolve_CachesResult(t *testing.T) {
	r, users, _ := newResolver()
	ctx := context.Background()
	p := entity.Principal{ID: "sub-2", Email: "a@b.fr"}

	first, err := r.Resolve(ctx, p)
	require.NoError(t, err)
	lookups := users.lookups

	second, err := r.Resolve(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, lookups, users.lookups, "la segunda resolución sale de caché")

	r.Invalidate(p.ID)
	_, err = r.Resolve(ctx, p)
	require.NoError(t, err)
	assert.Greater(t, users.lookups, lookups)
}

func TestResolve_BindsExistingUserByEmail(t *testing.T) {
	r, users, companies := newResolver()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u-1", CompanyID: "c-1", Email: "invitado@example.fr", Role: entity.RoleMember}))

	id, err := r.Resolve(ctx, entity.Principal{ID: "sub-3", Email: "invitado@example.fr"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", id.UserID)
	assert.Equal(t, "c-1", id.CompanyID)
	assert.Equal(t, "sub-3", users.byID["u-1"].SupabaseID)
	assert.Empty(t, companies.byID, "no se crea empresa nueva")
}

func TestResolve_MissingEmail(t *testing.T) {
	r, _, _ := newResolver()
	_, err := r.Resolve(context.Background(), entity.Principal{ID: "sub-4"})
	assert.ErrorIs(t, err, domain.ErrMissingEmail)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_EmptySubject(t *testing.T) {
	r, _, _ := newResolver()
	_, err := r.Resolve(context.Background(), entity.Principal{Email: "a@b.fr"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
