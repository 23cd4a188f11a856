package transactions

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses. Archiving a transaction moves it from the primary
// table into the history bucket without deleting the row.
const (
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

// Payment statuses.
const (
	PaymentSuccess  = "SUCCESS"
	PaymentPending  = "PENDING"
	PaymentRejected = "REJECTED"
)

// Address is the customer's billing address.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// Customer is the counterparty on a transaction.
type Customer struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	Address   Address `json:"address"`
}

// Transaction is a money movement on the owner's wallet.
type Transaction struct {
	ID            string          `json:"_id"`
	UserID        string          `json:"userID"`
	Customer      Customer        `json:"customer"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Archived reports whether the transaction lives in the history bucket.
func (t Transaction) Archived() bool {
	return t.Status == StatusArchived
}

// CustomerName is the full counterparty name used for search and sort.
func (t Transaction) CustomerName() string {
	return t.Customer.FirstName + " " + t.Customer.LastName
}

// Location is the city/state pair used for search and sort.
func (t Transaction) Location() string {
	return t.Customer.Address.City + ", " + t.Customer.Address.State
}
