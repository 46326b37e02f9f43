package inventory

// Row is one line of the inventory dashboard: an active product joined with
// its preferred vendor link, when one exists.
type Row struct {
	ProductID    int64    `json:"product_id"`
	ProductName  string   `json:"product_name"`
	SKU          string   `json:"sku"`
	Stock        int      `json:"stock"`
	VendorID     *int64   `json:"vendor_id"`
	VendorName   *string  `json:"vendor_name"`
	SupplyPrice  *float64 `json:"supply_price"`
	LeadTimeDays *int     `json:"lead_time_days"`
	Preferred    bool     `json:"preferred"`
}

// VendorLink is a pos.product_vendors row: a product's supply relationship
// with one vendor. At most one link per product may be preferred.
type VendorLink struct {
	ProductID    int64    `json:"product_id"`
	VendorID     int64    `json:"vendor_id"`
	SupplyPrice  *float64 `json:"supply_price"`
	LeadTimeDays *int     `json:"lead_time_days"`
	Preferred    bool     `json:"preferred"`
}
