package restock

import "context"

// Repository defines restock workflow storage.
type Repository interface {
	CreateOrder(ctx context.Context, order *Order) error
	// ListOpenOrders returns orders that have not been completed, newest
	// first.
	ListOpenOrders(ctx context.Context) ([]*Order, error)
	ListDeliveries(ctx context.Context) ([]*Delivery, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
	// VendorLeadTime returns the lead time in days recorded on the product's
	// link with the given vendor, or nil when no link or lead time exists.
	VendorLeadTime(ctx context.Context, productID, vendorID int64) (*int, error)
	// Deliver confirms delivery of an order in one transaction: it inserts
	// the delivery row, increments the product's stock by the order quantity
	// and marks the order COMPLETED. Returns apperr.NotFound for an unknown
	// id and apperr.Conflict when the order is already terminal.
	Deliver(ctx context.Context, restockID int64, notes *string) (*Delivery, error)
}
