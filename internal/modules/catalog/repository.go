package catalog

import "context"

// Repository defines product data storage.
type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProductByID(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context, active bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	SetActive(ctx context.Context, id int64, active bool) error
}
