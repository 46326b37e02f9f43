package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/envoyhq/envoy-backend/internal/apperr"
)

type postgresRepository struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListRows(ctx context.Context) ([]*Row, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.product_id, p.product_name, p.sku, p.stock,
		       pv.vendor_id, v.vendor_name, pv.supply_price, pv.lead_time_days,
		       COALESCE(pv.preferred, false)
		FROM pos.products p
		LEFT JOIN pos.product_vendors pv
		  ON pv.product_id = p.product_id AND pv.preferred
		LEFT JOIN pos.vendors v ON v.vendor_id = pv.vendor_id
		WHERE p.is_active
		ORDER BY p.product_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		row := &Row{}
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.SKU, &row.Stock,
			&row.VendorID, &row.VendorName, &row.SupplyPrice, &row.LeadTimeDays,
			&row.Preferred); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UpsertVendorLink preserves the single-preferred-link invariant: the clear
// and the upsert commit together or not at all.
func (r *postgresRepository) UpsertVendorLink(ctx context.Context, link *VendorLink) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pos.products WHERE product_id = $1)`,
		link.ProductID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.New(apperr.NotFound, "product not found")
	}

	if link.Preferred {
		_, err = tx.ExecContext(ctx, `
			UPDATE pos.product_vendors SET preferred = false
			WHERE product_id = $1 AND vendor_id <> $2`,
			link.ProductID, link.VendorID)
		if err != nil {
			return fmt.Errorf("clear preferred links: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pos.product_vendors (product_id, vendor_id, supply_price, lead_time_days, preferred)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, vendor_id) DO UPDATE
		SET supply_price = EXCLUDED.supply_price,
		    lead_time_days = EXCLUDED.lead_time_days,
		    preferred = EXCLUDED.preferred`,
		link.ProductID, link.VendorID, link.SupplyPrice, link.LeadTimeDays, link.Preferred)
	if err != nil {
		return fmt.Errorf("upsert vendor link: %w", err)
	}

	return tx.Commit()
}
