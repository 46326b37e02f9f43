package catalog

import (
	"context"
	"database/sql"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL product repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

const productColumns = `product_id, product_name, sku, price, stock, category_id, is_active, created_at, updated_at`

func (r *postgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO pos.products (product_name, sku, price, stock, category_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING product_id, created_at, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		p.Name, p.SKU, p.Price, p.Stock, p.CategoryID, p.IsActive).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) GetProductByID(ctx context.Context, id int64) (*Product, error) {
	p := &Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM pos.products WHERE product_id = $1`, id).
		Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.CategoryID,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepository) ListProducts(ctx context.Context, active bool) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM pos.products WHERE is_active = $1 ORDER BY product_id`, active)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p := &Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price, &p.Stock, &p.CategoryID,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *postgresRepository) UpdateProduct(ctx context.Context, p *Product) error {
	query := `
		UPDATE pos.products
		SET product_name = $1, sku = $2, price = $3, stock = $4,
		    category_id = $5, is_active = $6, updated_at = NOW()
		WHERE product_id = $7
		RETURNING updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		p.Name, p.SKU, p.Price, p.Stock, p.CategoryID, p.IsActive, p.ID).
		Scan(&p.UpdatedAt)
}

func (r *postgresRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pos.products SET is_active = $1, updated_at = NOW() WHERE product_id = $2`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
