package wallet

import "github.com/shopspring/decimal"

// AddMoneyRequest tops up the caller's wallet.
type AddMoneyRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// SendMoneyRequest moves money to another member.
type SendMoneyRequest struct {
	Email  string          `json:"email" validate:"required,email"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse carries the revealed balance plus its display form.
type BalanceResponse struct {
	Balance   decimal.Decimal `json:"balance"`
	Formatted string          `json:"formatted"`
}

// StatisticsResponse backs the dashboard chart and cards.
type StatisticsResponse struct {
	TotalBalance string     `json:"totalBalance"`
	TotalSpent   string     `json:"totalSpent"`
	Daily        []DayTotal `json:"daily"`
}
