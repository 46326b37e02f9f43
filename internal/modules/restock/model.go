package restock

import "time"

// Status is the restock order lifecycle state. Orders move forward only:
// PENDING to APPROVED to COMPLETED, with REJECTED as a terminal branch.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// Order is a pos.restock_orders row joined with product and vendor names for
// the dashboard.
type Order struct {
	ID               int64      `json:"restock_id"`
	ProductID        int64      `json:"product_id"`
	ProductName      string     `json:"product_name"`
	VendorID         *int64     `json:"vendor_id"`
	VendorName       *string    `json:"vendor_name"`
	Quantity         int        `json:"quantity"`
	Status           Status     `json:"status"`
	RequestedBy      int64      `json:"requested_by"`
	RequestedAt      time.Time  `json:"requested_at"`
	ExpectedDelivery *time.Time `json:"expected_delivery"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Delivery is a pos.restock_deliveries row. Exactly one exists per completed
// order and it is never mutated afterwards.
type Delivery struct {
	ID               int64     `json:"delivery_id"`
	RestockID        int64     `json:"restock_id"`
	ProductID        int64     `json:"product_id"`
	ProductName      string    `json:"product_name"`
	QuantityReceived int       `json:"quantity_received"`
	ReceivedAt       time.Time `json:"received_at"`
	Notes            *string   `json:"notes"`
}
