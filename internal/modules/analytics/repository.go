package analytics

import (
	"context"
	"time"
)

// Repository defines the read-only queries behind the aggregator.
type Repository interface {
	// SumSalesBetween sums order totals with order_date in [from, to).
	SumSalesBetween(ctx context.Context, from, to time.Time) (float64, error)
	ListOrderTotals(ctx context.Context) ([]*OrderTotal, error)
	ListActiveProductStats(ctx context.Context) ([]*ProductStat, error)
	ListCategories(ctx context.Context) ([]*Category, error)
}
