package wallet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
	"github.com/vaulta/vaulta/internal/transactions"
	"github.com/vaulta/vaulta/internal/users"
)

type fakeWalletRepo struct {
	balances  map[string]decimal.Decimal
	recorded  []transactions.Transaction
	recordErr error
}

func (f *fakeWalletRepo) Get(ctx context.Context, userID string) (*Wallet, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &Wallet{UserID: userID, Balance: balance}, nil
}

func (f *fakeWalletRepo) AddMoney(ctx context.Context, userID string, amount decimal.Decimal) (*Wallet, error) {
	f.balances[userID] = f.balances[userID].Add(amount)
	return &Wallet{UserID: userID, Balance: f.balances[userID]}, nil
}

func (f *fakeWalletRepo) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, record transactions.Transaction) error {
	if f.balances[fromID].LessThan(amount) {
		return httpx.ErrInsufficient
	}
	// The record insert is part of the same transaction, so its failure
	// rolls the balance moves back too.
	if f.recordErr != nil {
		return f.recordErr
	}
	f.balances[fromID] = f.balances[fromID].Sub(amount)
	f.balances[toID] = f.balances[toID].Add(amount)
	f.recorded = append(f.recorded, record)
	return nil
}

func (f *fakeWalletRepo) DailySpending(ctx context.Context, userID string, days int) ([]DayTotal, error) {
	return nil, nil
}

type fakeUserRepo struct {
	byEmail map[string]*users.User
}

func (f *fakeUserRepo) Get(ctx context.Context, id string) (*users.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeUserRepo) ListMembers(ctx context.Context, excludeID string) ([]users.Member, error) {
	return nil, nil
}

func (f *fakeUserRepo) SetPinCode(ctx context.Context, id, pinHash string) error {
	return nil
}

type fakeTxRepo struct {
	loads int
}

func (f *fakeTxRepo) List(ctx context.Context, userID string) ([]transactions.Transaction, error) {
	f.loads++
	return nil, nil
}

func (f *fakeTxRepo) Get(ctx context.Context, userID, id string) (*transactions.Transaction, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeTxRepo) Update(ctx context.Context, tx transactions.Transaction) error {
	return shared.ErrNotFound
}

func (f *fakeTxRepo) SetStatus(ctx context.Context, userID, id, status string) error {
	return shared.ErrNotFound
}

func newTestService(balances map[string]decimal.Decimal) (*Service, *fakeWalletRepo, *transactions.Service, *fakeTxRepo) {
	userRepo := &fakeUserRepo{byEmail: map[string]*users.User{
		"ana@example.com": {ID: "u2", FirstName: "Ana", LastName: "Diaz", Email: "ana@example.com"},
		"me@example.com":  {ID: "u1", FirstName: "Mel", LastName: "Owner", Email: "me@example.com"},
	}}
	walletRepo := &fakeWalletRepo{balances: balances}
	txRepo := &fakeTxRepo{}
	txService := transactions.NewService(txRepo, querycache.New[[]transactions.Transaction](time.Minute))
	return NewService(walletRepo, userRepo, txService), walletRepo, txService, txRepo
}

func TestSendMoneyDebitsAndRecordsTransaction(t *testing.T) {
	service, walletRepo, txService, txRepo := newTestService(map[string]decimal.Decimal{
		"u1": decimal.NewFromInt(500),
	})

	// warm the sender's transactions cache
	query := shared.ListQuery{Page: 1, PageSize: 10, SortDirection: shared.SortAsc}
	if _, err := txService.List(context.Background(), "u1", query); err != nil {
		t.Fatal(err)
	}

	tx, err := service.SendMoney(context.Background(), "u1", SendMoneyRequest{
		Email:  "ana@example.com",
		Amount: decimal.NewFromInt(120),
	})
	if err != nil {
		t.Fatal(err)
	}
	if tx.Customer.Email != "ana@example.com" || !tx.Amount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected transaction record: %+v", tx)
	}
	if len(walletRepo.recorded) != 1 {
		t.Fatalf("expected one recorded transaction, got %d", len(walletRepo.recorded))
	}

	balance, err := service.Balance(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Balance.Equal(decimal.NewFromInt(380)) {
		t.Fatalf("sender balance wrong: %s", balance.Balance)
	}

	resp, err := txService.List(context.Background(), "u1", query)
	if err != nil {
		t.Fatal(err)
	}
	if txRepo.loads != 1 {
		t.Fatalf("transfer must patch the cached list, not refetch (loads=%d)", txRepo.loads)
	}
	if len(resp.Transactions.Rows) != 1 || resp.Transactions.Rows[0].ID != tx.ID {
		t.Fatalf("transfer record missing from the cached list: %+v", resp.Transactions.Rows)
	}
}

func TestSendMoneyFailedRecordRollsBackTransfer(t *testing.T) {
	service, walletRepo, txService, _ := newTestService(map[string]decimal.Decimal{
		"u1": decimal.NewFromInt(500),
	})
	walletRepo.recordErr = errors.New("insert failed")

	query := shared.ListQuery{Page: 1, PageSize: 10, SortDirection: shared.SortAsc}
	if _, err := txService.List(context.Background(), "u1", query); err != nil {
		t.Fatal(err)
	}

	_, err := service.SendMoney(context.Background(), "u1", SendMoneyRequest{
		Email:  "ana@example.com",
		Amount: decimal.NewFromInt(120),
	})
	if err == nil {
		t.Fatal("expected send money to fail")
	}

	balance, err := service.Balance(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("failed record must leave balances untouched, got %s", balance.Balance)
	}
	resp, err := txService.List(context.Background(), "u1", query)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Transactions.Rows) != 0 {
		t.Fatalf("failed transfer must not patch the cached list: %+v", resp.Transactions.Rows)
	}
}

func TestSendMoneyRejectsOverdraw(t *testing.T) {
	service, _, _, _ := newTestService(map[string]decimal.Decimal{
		"u1": decimal.NewFromInt(50),
	})

	_, err := service.SendMoney(context.Background(), "u1", SendMoneyRequest{
		Email:  "ana@example.com",
		Amount: decimal.NewFromInt(120),
	})
	if !errors.Is(err, httpx.ErrInsufficient) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestSendMoneyRejectsSelfAndNonPositive(t *testing.T) {
	service, _, _, _ := newTestService(map[string]decimal.Decimal{
		"u1": decimal.NewFromInt(500),
	})

	if _, err := service.SendMoney(context.Background(), "u1", SendMoneyRequest{
		Email:  "me@example.com",
		Amount: decimal.NewFromInt(10),
	}); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error for self-send, got %v", err)
	}

	if _, err := service.SendMoney(context.Background(), "u1", SendMoneyRequest{
		Email:  "ana@example.com",
		Amount: decimal.Zero,
	}); !errors.Is(err, httpx.ErrValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func TestBalanceDefaultsToZeroWithoutWallet(t *testing.T) {
	service, _, _, _ := newTestService(map[string]decimal.Decimal{})

	balance, err := service.Balance(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if !balance.Balance.IsZero() || balance.Formatted != "0.00" {
		t.Fatalf("expected zero balance, got %+v", balance)
	}
}

func TestAddMoneyFormatsBalance(t *testing.T) {
	service, _, _, _ := newTestService(map[string]decimal.Decimal{})

	resp, err := service.AddMoney(context.Background(), "u1", decimal.NewFromInt(12345))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Formatted != "12,345.00" {
		t.Fatalf("expected comma-grouped balance, got %q", resp.Formatted)
	}
}
