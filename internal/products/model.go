package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one sellable item shown in the products table.
type Product struct {
	ID        string          `json:"_id" db:"id"`
	UserID    string          `json:"userId" db:"user_id"`
	Name      string          `json:"name" db:"name"`
	ImageURLs []string        `json:"imageURLs" db:"image_urls"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Stock     int             `json:"stock" db:"stock"`
	Sales     int             `json:"sales" db:"sales"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
