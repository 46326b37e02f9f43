package analytics

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL analytics repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) SumSalesBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total), 0) FROM pos.orders
		WHERE order_date >= $1 AND order_date < $2`,
		from, to).Scan(&total)
	return total, err
}

func (r *postgresRepository) ListOrderTotals(ctx context.Context) ([]*OrderTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT total, order_date FROM pos.orders`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []*OrderTotal
	for rows.Next() {
		t := &OrderTotal{}
		if err := rows.Scan(&t.Total, &t.OrderDate); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *postgresRepository) ListActiveProductStats(ctx context.Context) ([]*ProductStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, price, stock FROM pos.products WHERE is_active`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*ProductStat
	for rows.Next() {
		s := &ProductStat{}
		if err := rows.Scan(&s.CategoryID, &s.Price, &s.Stock); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *postgresRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, category_name FROM pos.categories`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
