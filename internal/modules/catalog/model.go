package catalog

import "time"

// Product is a sellable item in the pos.products table. Products are never
// hard-deleted; is_active=false retires them from every customer-facing view.
type Product struct {
	ID         int64     `json:"product_id"`
	Name       string    `json:"product_name"`
	SKU        string    `json:"sku"`
	Price      float64   `json:"price"`
	Stock      int       `json:"stock"`
	CategoryID *int64    `json:"category_id"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Category groups products for the stock distribution view.
type Category struct {
	ID   int64  `json:"category_id"`
	Name string `json:"category_name"`
}
