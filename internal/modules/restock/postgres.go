package restock

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/envoyhq/envoy-backend/internal/apperr"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL restock repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateOrder(ctx context.Context, order *Order) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pos.restock_orders
			(product_id, vendor_id, quantity, status, requested_by, expected_delivery)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING restock_id, requested_at, updated_at`,
		order.ProductID, order.VendorID, order.Quantity, order.Status,
		order.RequestedBy, order.ExpectedDelivery).
		Scan(&order.ID, &order.RequestedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx,
		`SELECT product_name FROM pos.products WHERE product_id = $1`,
		order.ProductID).Scan(&order.ProductName)
}

func (r *postgresRepository) ListOpenOrders(ctx context.Context) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ro.restock_id, ro.product_id, p.product_name,
		       ro.vendor_id, v.vendor_name, ro.quantity, ro.status,
		       ro.requested_by, ro.requested_at, ro.expected_delivery, ro.updated_at
		FROM pos.restock_orders ro
		JOIN pos.products p ON p.product_id = ro.product_id
		LEFT JOIN pos.vendors v ON v.vendor_id = ro.vendor_id
		WHERE ro.status <> $1
		ORDER BY ro.requested_at DESC`, StatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o := &Order{}
		if err := rows.Scan(&o.ID, &o.ProductID, &o.ProductName,
			&o.VendorID, &o.VendorName, &o.Quantity, &o.Status,
			&o.RequestedBy, &o.RequestedAt, &o.ExpectedDelivery, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepository) ListDeliveries(ctx context.Context) ([]*Delivery, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.delivery_id, d.restock_id, d.product_id, p.product_name,
		       d.quantity_received, d.received_at, d.notes
		FROM pos.restock_deliveries d
		JOIN pos.products p ON p.product_id = d.product_id
		ORDER BY d.received_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*Delivery
	for rows.Next() {
		d := &Delivery{}
		if err := rows.Scan(&d.ID, &d.RestockID, &d.ProductID, &d.ProductName,
			&d.QuantityReceived, &d.ReceivedAt, &d.Notes); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (r *postgresRepository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pos.products WHERE product_id = $1 AND is_active)`,
		productID).Scan(&exists)
	return exists, err
}

func (r *postgresRepository) VendorLeadTime(ctx context.Context, productID, vendorID int64) (*int, error) {
	var leadTime *int
	err := r.db.QueryRowContext(ctx, `
		SELECT lead_time_days FROM pos.product_vendors
		WHERE product_id = $1 AND vendor_id = $2`,
		productID, vendorID).Scan(&leadTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return leadTime, nil
}

// Deliver takes a row lock on the order so concurrent confirmations on the
// same id serialize; the loser sees COMPLETED and gets a Conflict.
func (r *postgresRepository) Deliver(ctx context.Context, restockID int64, notes *string) (*Delivery, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var (
		productID int64
		quantity  int
		status    Status
	)
	err = tx.QueryRowContext(ctx, `
		SELECT product_id, quantity, status FROM pos.restock_orders
		WHERE restock_id = $1
		FOR UPDATE`, restockID).Scan(&productID, &quantity, &status)
	if err == sql.ErrNoRows {
		return nil, apperr.New(apperr.NotFound, "restock order not found")
	}
	if err != nil {
		return nil, err
	}
	if status.Terminal() {
		return nil, apperr.Newf(apperr.Conflict, "restock order already %s", status)
	}

	d := &Delivery{RestockID: restockID, ProductID: productID, QuantityReceived: quantity, Notes: notes}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO pos.restock_deliveries (restock_id, product_id, quantity_received, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING delivery_id, received_at`,
		restockID, productID, quantity, notes).Scan(&d.ID, &d.ReceivedAt)
	if err != nil {
		return nil, fmt.Errorf("insert delivery: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pos.products SET stock = stock + $1, updated_at = now() WHERE product_id = $2`,
		quantity, productID)
	if err != nil {
		return nil, fmt.Errorf("increment stock: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pos.restock_orders SET status = $1, updated_at = now() WHERE restock_id = $2`,
		StatusCompleted, restockID)
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT product_name FROM pos.products WHERE product_id = $1`,
		productID).Scan(&d.ProductName); err != nil {
		return nil, err
	}
	return d, nil
}
