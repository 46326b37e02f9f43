package analytics

import "time"

// OrderTotal is the slice of a sales order the aggregator needs: its total
// and when it was placed. Total is nil for legacy rows with no amount.
type OrderTotal struct {
	Total     *float64
	OrderDate time.Time
}

// ProductStat is the slice of an active product the category breakdown and
// worth computations need.
type ProductStat struct {
	CategoryID *int64
	Price      float64
	Stock      int
}

// Category is a pos.categories row.
type Category struct {
	ID   int64
	Name string
}

// CategoryBucket is one bar of the stock-by-category chart.
type CategoryBucket struct {
	Label string
	Value float64
}
