package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's balance.
type Wallet struct {
	UserID    string          `json:"userID"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DayTotal is one bar of the dashboard statistics chart.
type DayTotal struct {
	Day   string          `json:"day"`
	Spent decimal.Decimal `json:"spent"`
}
