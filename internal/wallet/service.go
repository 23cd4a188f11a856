package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
	"github.com/vaulta/vaulta/internal/transactions"
	"github.com/vaulta/vaulta/internal/users"
)

const statisticsDays = 7

// Service moves money between wallets and answers the dashboard cards.
type Service struct {
	repo         Repository
	users        users.Repository
	transactions *transactions.Service
}

// NewService constructs the wallet service.
func NewService(repo Repository, userRepo users.Repository, txService *transactions.Service) *Service {
	return &Service{repo: repo, users: userRepo, transactions: txService}
}

// Balance returns the user's balance. A user without a wallet row has a
// zero balance, not an error.
func (s *Service) Balance(ctx context.Context, userID string) (*BalanceResponse, error) {
	wallet, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &BalanceResponse{Balance: decimal.Zero, Formatted: shared.FormatAmount(decimal.Zero)}, nil
		}
		return nil, fmt.Errorf("load wallet: %w", err)
	}
	return &BalanceResponse{
		Balance:   wallet.Balance,
		Formatted: shared.FormatAmount(wallet.Balance),
	}, nil
}

// AddMoney tops up the caller's wallet.
func (s *Service) AddMoney(ctx context.Context, userID string, amount decimal.Decimal) (*BalanceResponse, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	}
	wallet, err := s.repo.AddMoney(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("add money: %w", err)
	}
	return &BalanceResponse{
		Balance:   wallet.Balance,
		Formatted: shared.FormatAmount(wallet.Balance),
	}, nil
}

// SendMoney transfers money to another member and records the movement
// as a transaction on the sender's table.
func (s *Service) SendMoney(ctx context.Context, userID string, req SendMoneyRequest) (*transactions.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", httpx.ErrValidation)
	}

	recipient, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("resolve recipient: %w", err)
	}
	if recipient.ID == userID {
		return nil, fmt.Errorf("%w: cannot send money to yourself", httpx.ErrValidation)
	}

	record := transactions.Transaction{
		ID:     uuid.NewString(),
		UserID: userID,
		Customer: transactions.Customer{
			FirstName: recipient.FirstName,
			LastName:  recipient.LastName,
			Email:     recipient.Email,
			Role:      "Member",
		},
		Amount:        req.Amount,
		PaymentStatus: transactions.PaymentSuccess,
		Status:        transactions.StatusActive,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	// The debit, credit, and transaction record commit together.
	if err := s.repo.Transfer(ctx, userID, recipient.ID, req.Amount, record); err != nil {
		return nil, err
	}

	s.transactions.Attach(record)
	return &record, nil
}

// Statistics summarizes the wallet for the dashboard chart and cards.
func (s *Service) Statistics(ctx context.Context, userID string) (*StatisticsResponse, error) {
	balance, err := s.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	daily, err := s.repo.DailySpending(ctx, userID, statisticsDays)
	if err != nil {
		return nil, fmt.Errorf("load spending: %w", err)
	}

	spent := decimal.Zero
	for _, day := range daily {
		spent = spent.Add(day.Spent)
	}
	return &StatisticsResponse{
		TotalBalance: shared.FormatAmount(balance.Balance),
		TotalSpent:   shared.FormatAmount(spent),
		Daily:        daily,
	}, nil
}
