package transactions

import (
	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/listing"
)

// UpdateTransactionRequest carries a partial transaction edit. Only the
// customer details and the payment status can change; the amount is fixed
// once the movement happened.
type UpdateTransactionRequest struct {
	FirstName     *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName      *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Role          *string `json:"role,omitempty" validate:"omitempty,max=50"`
	Street        *string `json:"street,omitempty" validate:"omitempty,max=200"`
	City          *string `json:"city,omitempty" validate:"omitempty,max=100"`
	State         *string `json:"state,omitempty" validate:"omitempty,max=100"`
	Zip           *string `json:"zip,omitempty" validate:"omitempty,max=20"`
	PaymentStatus *string `json:"paymentStatus,omitempty" validate:"omitempty,oneof=SUCCESS PENDING REJECTED"`
}

// ListResponse carries both table buckets shaped by the same query.
type ListResponse struct {
	Transactions listing.Page[Transaction] `json:"transactions"`
	History      listing.Page[Transaction] `json:"history"`
	TotalSpent   decimal.Decimal           `json:"totalSpent"`
}
