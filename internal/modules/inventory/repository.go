package inventory

import "context"

// Repository defines inventory data storage.
type Repository interface {
	ListRows(ctx context.Context) ([]*Row, error)
	// UpsertVendorLink writes the link and, when it is marked preferred,
	// clears the preferred flag on every other link of the same product in
	// the same transaction.
	UpsertVendorLink(ctx context.Context, link *VendorLink) error
}
