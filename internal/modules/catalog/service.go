package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/envoyhq/envoy-backend/internal/apperr"
)

// Service defines catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	ListProducts(ctx context.Context, active bool) ([]*Product, error)
	UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error)
	// DeactivateProduct soft-deletes: the row stays, is_active drops to false.
	DeactivateProduct(ctx context.Context, id int64) error
}

// CreateProductRequest holds the data for adding a product. Numeric fields
// are pointers so a missing field is distinguishable from zero.
type CreateProductRequest struct {
	Name       string   `json:"product_name"`
	SKU        string   `json:"sku"`
	Price      *float64 `json:"price"`
	Stock      *int     `json:"stock"`
	CategoryID *int64   `json:"category_id"`
}

// UpdateProductRequest is a partial patch; nil fields are left untouched.
type UpdateProductRequest struct {
	Name       *string  `json:"product_name"`
	SKU        *string  `json:"sku"`
	Price      *float64 `json:"price"`
	Stock      *int     `json:"stock"`
	CategoryID *int64   `json:"category_id"`
	IsActive   *bool    `json:"is_active"`
}

func (r UpdateProductRequest) empty() bool {
	return r.Name == nil && r.SKU == nil && r.Price == nil &&
		r.Stock == nil && r.CategoryID == nil && r.IsActive == nil
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" || req.SKU == "" {
		return nil, apperr.New(apperr.Invalid, "product_name and sku are required")
	}
	if req.Price == nil || *req.Price < 0 {
		return nil, apperr.New(apperr.Invalid, "price is required and must be >= 0")
	}
	if req.Stock == nil || *req.Stock < 0 {
		return nil, apperr.New(apperr.Invalid, "stock is required and must be >= 0")
	}

	p := &Product{
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      *req.Price,
		Stock:      *req.Stock,
		CategoryID: req.CategoryID,
		IsActive:   true,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to create product", err)
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, active bool) ([]*Product, error) {
	return s.repo.ListProducts(ctx, active)
}

func (s *service) UpdateProduct(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	if req.empty() {
		return nil, apperr.New(apperr.Invalid, "no fields to update")
	}

	p, err := s.repo.GetProductByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.SKU != nil {
		p.SKU = *req.SKU
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperr.New(apperr.Invalid, "price must be >= 0")
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.New(apperr.Invalid, "stock must be >= 0")
		}
		p.Stock = *req.Stock
	}
	if req.CategoryID != nil {
		p.CategoryID = req.CategoryID
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, apperr.Wrap(apperr.Store, "failed to update product", err)
	}
	return p, nil
}

func (s *service) DeactivateProduct(ctx context.Context, id int64) error {
	err := s.repo.SetActive(ctx, id, false)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.New(apperr.NotFound, "product not found")
	}
	if err != nil {
		return apperr.Wrap(apperr.Store, "failed to deactivate product", err)
	}
	return nil
}
