package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/envoyhq/envoy-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	products map[int64]*Product
	nextID   int64
}

func newFakeRepo(products ...*Product) *fakeRepo {
	f := &fakeRepo{products: map[int64]*Product{}, nextID: 100}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeRepo) CreateProduct(ctx context.Context, p *Product) error {
	f.nextID++
	p.ID = f.nextID
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListProducts(ctx context.Context, active bool) ([]*Product, error) {
	var out []*Product
	for _, p := range f.products {
		if p.IsActive == active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateProduct(ctx context.Context, p *Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeRepo) SetActive(ctx context.Context, id int64, active bool) error {
	p, ok := f.products[id]
	if !ok {
		return sql.ErrNoRows
	}
	p.IsActive = active
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name:  "Espresso Beans",
		SKU:   "SKU-001",
		Price: ptr(12.50),
		Stock: ptr(40),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.True(t, p.IsActive)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	cases := []CreateProductRequest{
		{SKU: "SKU-001", Price: ptr(1.0), Stock: ptr(1)},
		{Name: "Beans", Price: ptr(1.0), Stock: ptr(1)},
		{Name: "Beans", SKU: "SKU-001", Stock: ptr(1)},
		{Name: "Beans", SKU: "SKU-001", Price: ptr(1.0)},
		{Name: "Beans", SKU: "SKU-001", Price: ptr(-1.0), Stock: ptr(1)},
		{Name: "Beans", SKU: "SKU-001", Price: ptr(1.0), Stock: ptr(-1)},
	}
	for _, req := range cases {
		_, err := svc.CreateProduct(context.Background(), req)
		assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
	}
}

func TestUpdateProductPartialPatch(t *testing.T) {
	repo := newFakeRepo(&Product{ID: 1, Name: "Beans", SKU: "SKU-001", Price: 10, Stock: 5, IsActive: true})
	svc := NewService(repo)

	p, err := svc.UpdateProduct(context.Background(), 1, UpdateProductRequest{Price: ptr(11.0)})
	require.NoError(t, err)
	assert.Equal(t, 11.0, p.Price)
	assert.Equal(t, "Beans", p.Name)
	assert.Equal(t, 5, p.Stock)
}

func TestUpdateProductEmptyPatch(t *testing.T) {
	svc := NewService(newFakeRepo(&Product{ID: 1, IsActive: true}))

	_, err := svc.UpdateProduct(context.Background(), 1, UpdateProductRequest{})
	assert.Equal(t, apperr.Invalid, apperr.KindOf(err))
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, err := svc.UpdateProduct(context.Background(), 42, UpdateProductRequest{Price: ptr(1.0)})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestDeactivateProductIsSoftDelete(t *testing.T) {
	repo := newFakeRepo(&Product{ID: 1, Name: "Beans", IsActive: true})
	svc := NewService(repo)

	require.NoError(t, svc.DeactivateProduct(context.Background(), 1))

	// The row survives, it just drops out of the active listing.
	p, err := repo.GetProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	active, err := svc.ListProducts(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, active)

	inactive, err := svc.ListProducts(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, inactive, 1)
}

func TestDeactivateUnknownProduct(t *testing.T) {
	svc := NewService(newFakeRepo())

	err := svc.DeactivateProduct(context.Background(), 42)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}
