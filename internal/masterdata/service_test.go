package masterdata

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fakeRepo struct {
	customers map[int64]*Customer
	suppliers map[int64]*Supplier
	scaffolds map[int64]*Scaffold
	nextID    int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		customers: make(map[int64]*Customer),
		suppliers: make(map[int64]*Supplier),
		scaffolds: make(map[int64]*Scaffold),
		nextID:    1,
	}
}

func (f *fakeRepo) id() int64 {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeRepo) CreateCustomer(ctx context.Context, c Customer) (Customer, error) {
	c.ID = f.id()
	c.CreatedAt = time.Now()
	stored := c
	f.customers[c.ID] = &stored
	return c, nil
}

func (f *fakeRepo) UpdateCustomer(ctx context.Context, c Customer) error {
	stored, ok := f.customers[c.ID]
	if !ok {
		return ErrCustomerNotFound
	}
	*stored = c
	return nil
}

func (f *fakeRepo) GetCustomer(ctx context.Context, id int64) (Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return Customer{}, ErrCustomerNotFound
	}
	return *c, nil
}

func (f *fakeRepo) ListCustomers(ctx context.Context, activeOnly bool) ([]Customer, error) {
	var out []Customer
	for _, c := range f.customers {
		if activeOnly && !c.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeRepo) CreateSupplier(ctx context.Context, s Supplier) (Supplier, error) {
	s.ID = f.id()
	stored := s
	f.suppliers[s.ID] = &stored
	return s, nil
}

func (f *fakeRepo) UpdateSupplier(ctx context.Context, s Supplier) error {
	stored, ok := f.suppliers[s.ID]
	if !ok {
		return ErrSupplierNotFound
	}
	*stored = s
	return nil
}

func (f *fakeRepo) GetSupplier(ctx context.Context, id int64) (Supplier, error) {
	s, ok := f.suppliers[id]
	if !ok {
		return Supplier{}, ErrSupplierNotFound
	}
	return *s, nil
}

func (f *fakeRepo) ListSuppliers(ctx context.Context, activeOnly bool) ([]Supplier, error) {
	var out []Supplier
	for _, s := range f.suppliers {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeRepo) CreateScaffold(ctx context.Context, s Scaffold) (Scaffold, error) {
	for _, existing := range f.scaffolds {
		if existing.Code == s.Code {
			return Scaffold{}, ErrDuplicateScaffoldCode
		}
	}
	s.ID = f.id()
	stored := s
	f.scaffolds[s.ID] = &stored
	return s, nil
}

func (f *fakeRepo) UpdateScaffold(ctx context.Context, s Scaffold) error {
	stored, ok := f.scaffolds[s.ID]
	if !ok {
		return ErrScaffoldNotFound
	}
	*stored = s
	return nil
}

func (f *fakeRepo) GetScaffold(ctx context.Context, id int64) (Scaffold, error) {
	s, ok := f.scaffolds[id]
	if !ok {
		return Scaffold{}, ErrScaffoldNotFound
	}
	return *s, nil
}

func (f *fakeRepo) ListScaffolds(ctx context.Context, activeOnly bool) ([]Scaffold, error) {
	var out []Scaffold
	for _, s := range f.scaffolds {
		out = append(out, *s)
	}
	return out, nil
}

func TestCreateScaffoldStartsFullyAvailable(t *testing.T) {
	svc := NewService(newFakeRepo())
	scaffold, err := svc.CreateScaffold(context.Background(), CreateScaffoldRequest{
		Code:          "SCF-H20",
		Name:          "H20 Frame",
		DailyRate:     dec("7.50"),
		MonthlyRate:   dec("100"),
		QuantityTotal: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, scaffold.QuantityAvailable)
	assert.True(t, scaffold.IsActive)
}

func TestUpdateScaffoldStockDelta(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	scaffold, err := svc.CreateScaffold(context.Background(), CreateScaffoldRequest{
		Code: "SCF-H20", Name: "H20 Frame", DailyRate: dec("7.50"), MonthlyRate: dec("100"), QuantityTotal: 40,
	})
	require.NoError(t, err)

	// 10 units out on rent
	repo.scaffolds[scaffold.ID].QuantityAvailable = 30

	total := 50
	updated, err := svc.UpdateScaffold(context.Background(), scaffold.ID, UpdateScaffoldRequest{QuantityTotal: &total})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.QuantityTotal)
	assert.Equal(t, 40, updated.QuantityAvailable, "delta applies to available stock")
}

func TestCreateScaffoldRejectsDuplicateCode(t *testing.T) {
	svc := NewService(newFakeRepo())
	req := CreateScaffoldRequest{Code: "SCF-H20", Name: "H20", DailyRate: dec("1"), MonthlyRate: dec("20"), QuantityTotal: 1}
	_, err := svc.CreateScaffold(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.CreateScaffold(context.Background(), req)
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestContractGatewayRejectsInactive(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	gw := NewContractGateway(svc)

	customer, err := svc.CreateCustomer(context.Background(), CreateCustomerRequest{Name: "Al Noor Construction"})
	require.NoError(t, err)
	require.NoError(t, gw.Exists(context.Background(), customer.ID))

	repo.customers[customer.ID].IsActive = false
	assert.ErrorIs(t, gw.Exists(context.Background(), customer.ID), httpx.ErrState)

	scaffold, err := svc.CreateScaffold(context.Background(), CreateScaffoldRequest{
		Code: "SCF-H20", Name: "H20", DailyRate: dec("7.50"), MonthlyRate: dec("100"), QuantityTotal: 5,
	})
	require.NoError(t, err)
	rates, err := gw.Rates(context.Background(), scaffold.ID)
	require.NoError(t, err)
	assert.True(t, rates.MonthlyRate.Equal(dec("100")))

	assert.ErrorIs(t, func() error {
		_, err := gw.Rates(context.Background(), 999)
		return err
	}(), httpx.ErrNotFound)
}
