package transactions

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/listing"
	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
)

var searchFields = []listing.StringField[Transaction]{
	Transaction.CustomerName,
	func(t Transaction) string { return t.Customer.Email },
	Transaction.Location,
}

var sortFields = listing.SortFields[Transaction]{
	Strings: map[string]listing.StringField[Transaction]{
		"name":     Transaction.CustomerName,
		"email":    func(t Transaction) string { return t.Customer.Email },
		"location": Transaction.Location,
		"role":     func(t Transaction) string { return t.Customer.Role },
		"date":     func(t Transaction) string { return t.CreatedAt.Format("2006-01-02 15:04:05") },
	},
	Numbers: map[string]listing.NumberField[Transaction]{
		"spent": func(t Transaction) float64 { return t.Amount.InexactFloat64() },
	},
}

// Service serves both transaction buckets out of one cached collection.
// Archiving flips the row's status, so a delete from the primary table is
// an insert into the history table on the very next read.
type Service struct {
	repo  Repository
	cache *querycache.Cache[[]Transaction]
}

// NewService constructs the transactions service.
func NewService(repo Repository, cache *querycache.Cache[[]Transaction]) *Service {
	return &Service{repo: repo, cache: cache}
}

func cacheKey(userID string) string {
	return "transactions:" + userID
}

func (s *Service) collection(ctx context.Context, userID string) ([]Transaction, error) {
	return s.cache.Fetch(ctx, cacheKey(userID), func(ctx context.Context) ([]Transaction, error) {
		return s.repo.List(ctx, userID)
	})
}

// List shapes the active and archived buckets with the same query.
func (s *Service) List(ctx context.Context, userID string, query shared.ListQuery) (*ListResponse, error) {
	collection, err := s.collection(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	active, history := listing.Partition(collection, Transaction.Archived)
	spent := decimal.Zero
	for _, tx := range active {
		spent = spent.Add(tx.Amount)
	}
	return &ListResponse{
		Transactions: listing.View(active, query, searchFields, sortFields),
		History:      listing.View(history, query, searchFields, sortFields),
		TotalSpent:   spent,
	}, nil
}

// Attach prepends a transaction persisted elsewhere, such as inside a
// wallet transfer, to the cached collection.
func (s *Service) Attach(tx Transaction) {
	s.cache.Patch(cacheKey(tx.UserID), func(collection []Transaction) []Transaction {
		return append([]Transaction{tx}, collection...)
	})
}

// Update applies a partial edit and replaces the record in the cached
// collection by id.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateTransactionRequest) (*Transaction, error) {
	existing, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	if req.FirstName != nil {
		existing.Customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		existing.Customer.LastName = *req.LastName
	}
	if req.Email != nil {
		existing.Customer.Email = *req.Email
	}
	if req.Role != nil {
		existing.Customer.Role = *req.Role
	}
	if req.Street != nil {
		existing.Customer.Address.Street = *req.Street
	}
	if req.City != nil {
		existing.Customer.Address.City = *req.City
	}
	if req.State != nil {
		existing.Customer.Address.State = *req.State
	}
	if req.Zip != nil {
		existing.Customer.Address.Zip = *req.Zip
	}
	if req.PaymentStatus != nil {
		existing.PaymentStatus = *req.PaymentStatus
	}

	if err := s.repo.Update(ctx, *existing); err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	s.replaceCached(userID, *existing)
	return existing, nil
}

// Archive flips the transaction into the history bucket.
func (s *Service) Archive(ctx context.Context, userID, id string) (*Transaction, error) {
	existing, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := s.repo.SetStatus(ctx, userID, id, StatusArchived); err != nil {
		return nil, fmt.Errorf("archive transaction: %w", err)
	}

	existing.Status = StatusArchived
	s.replaceCached(userID, *existing)
	return existing, nil
}

func (s *Service) replaceCached(userID string, tx Transaction) {
	s.cache.Patch(cacheKey(userID), func(collection []Transaction) []Transaction {
		updated := make([]Transaction, len(collection))
		for i, item := range collection {
			if item.ID == tx.ID {
				updated[i] = tx
			} else {
				updated[i] = item
			}
		}
		return updated
	})
}
