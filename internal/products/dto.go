package products

import "github.com/shopspring/decimal"

// CreateProductRequest carries a new product.
type CreateProductRequest struct {
	Name      string          `json:"name" validate:"required,max=200"`
	ImageURLs []string        `json:"imageURLs" validate:"omitempty,dive,url"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock" validate:"gte=0"`
	Sales     int             `json:"sales" validate:"gte=0"`
}

// UpdateProductRequest carries a partial product update.
type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	ImageURLs []string         `json:"imageURLs,omitempty" validate:"omitempty,dive,url"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Stock     *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Sales     *int             `json:"sales,omitempty" validate:"omitempty,gte=0"`
}
