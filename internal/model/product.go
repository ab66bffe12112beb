package model

import "time"

// Product is a row of the products table. Price is an integral amount.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateProduct holds the validated fields of a new product.
type CreateProduct struct {
	Name  string
	Price int64
}

// UpdateProduct holds the columns to change; unset patches are left as stored.
type UpdateProduct struct {
	Name  Patch[string]
	Price Patch[int64]
}
