package products

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/querycache"
	"github.com/vaulta/vaulta/internal/shared"
)

type fakeRepo struct {
	products []Product
	listErr  error
	writeErr error
	loads    int
}

func (f *fakeRepo) List(ctx context.Context, userID string) ([]Product, error) {
	f.loads++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Product(nil), f.products...), nil
}

func (f *fakeRepo) Get(ctx context.Context, userID, id string) (*Product, error) {
	for _, p := range f.products {
		if p.ID == id && p.UserID == userID {
			copy := p
			return &copy, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeRepo) Create(ctx context.Context, product Product) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.products = append(f.products, product)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, product Product) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	for i, p := range f.products {
		if p.ID == product.ID && p.UserID == product.UserID {
			f.products[i] = product
			return nil
		}
	}
	return shared.ErrNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, userID, id string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	for i, p := range f.products {
		if p.ID == id && p.UserID == userID {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return nil
		}
	}
	return shared.ErrNotFound
}

func newService(repo *fakeRepo) *Service {
	return NewService(repo, querycache.New[[]Product](time.Minute))
}

func seedProducts(names ...string) []Product {
	seeded := make([]Product, 0, len(names))
	for i, name := range names {
		seeded = append(seeded, Product{
			ID:        fmt.Sprintf("p-%d", i),
			UserID:    "u1",
			Name:      name,
			Price:     decimal.NewFromInt(int64(10 + i)),
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Hour),
		})
	}
	return seeded
}

func TestListSearchPaginates(t *testing.T) {
	repo := &fakeRepo{products: seedProducts(
		"Chelsea Boot", "Sneaker", "Loafer", "Desert Boot", "Sandal",
		"Mule", "Oxford", "Derby", "Monk", "Brogue",
		"Slipper", "Clog", "Moccasin",
	)}
	service := newService(repo)

	page, err := service.List(context.Background(), "u1", shared.ListQuery{
		Keyword:       "boot",
		SortDirection: shared.SortAsc,
		Page:          1,
		PageSize:      5,
	})
	if err != nil {
		t.Fatal(err)
	}
	if page.Pagination.TotalPages != 1 {
		t.Fatalf("expected one page, got %d", page.Pagination.TotalPages)
	}
	if len(page.Rows) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(page.Rows))
	}
	if page.HasPrev || page.HasNext {
		t.Fatal("prev and next must both be disabled")
	}
}

func TestListServesFromCache(t *testing.T) {
	repo := &fakeRepo{products: seedProducts("Boot")}
	service := newService(repo)

	for i := 0; i < 3; i++ {
		if _, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 5}); err != nil {
			t.Fatal(err)
		}
	}
	if repo.loads != 1 {
		t.Fatalf("expected a single repository load, got %d", repo.loads)
	}
}

func TestCreatePrependsToCachedCollection(t *testing.T) {
	repo := &fakeRepo{products: seedProducts("Sneaker", "Loafer")}
	service := newService(repo)

	// warm the cache
	if _, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10}); err != nil {
		t.Fatal(err)
	}

	created, err := service.Create(context.Background(), "u1", CreateProductRequest{
		Name:  "Chelsea Boot",
		Price: decimal.NewFromInt(99),
	})
	if err != nil {
		t.Fatal(err)
	}

	page, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if repo.loads != 1 {
		t.Fatalf("create must patch the cache, not refetch (loads=%d)", repo.loads)
	}
	if page.Rows[0].ID != created.ID {
		t.Fatalf("new record must sit at index 0, got %q", page.Rows[0].Name)
	}
	count := 0
	for _, row := range page.Rows {
		if row.ID == created.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("new record must appear exactly once, got %d", count)
	}
}

func TestUpdateReplacesExactlyOneRecord(t *testing.T) {
	repo := &fakeRepo{products: seedProducts("Sneaker", "Loafer", "Boot")}
	service := newService(repo)
	if _, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10}); err != nil {
		t.Fatal(err)
	}

	name := "Runner"
	if _, err := service.Update(context.Background(), "u1", "p-0", UpdateProductRequest{Name: &name}); err != nil {
		t.Fatal(err)
	}

	page, _ := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	for _, row := range page.Rows {
		switch row.ID {
		case "p-0":
			if row.Name != "Runner" {
				t.Fatalf("updated record not reflected: %q", row.Name)
			}
		case "p-1":
			if row.Name != "Loafer" {
				t.Fatalf("unrelated record changed: %q", row.Name)
			}
		}
	}
}

func TestDeleteRemovesFromCachedCollection(t *testing.T) {
	repo := &fakeRepo{products: seedProducts("Sneaker", "Loafer")}
	service := newService(repo)
	if _, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10}); err != nil {
		t.Fatal(err)
	}

	if err := service.Delete(context.Background(), "u1", "p-1"); err != nil {
		t.Fatal(err)
	}

	page, _ := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	for _, row := range page.Rows {
		if row.ID == "p-1" {
			t.Fatal("deleted record still present")
		}
	}
	if len(page.Rows) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(page.Rows))
	}
}

func TestMutationsRejectForeignProducts(t *testing.T) {
	repo := &fakeRepo{products: seedProducts("Sneaker", "Loafer")}
	service := newService(repo)
	if _, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10}); err != nil {
		t.Fatal(err)
	}

	name := "Hijacked"
	if _, err := service.Update(context.Background(), "u2", "p-0", UpdateProductRequest{Name: &name}); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("update by another user must report not found, got %v", err)
	}
	if err := service.Delete(context.Background(), "u2", "p-1"); !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("delete by another user must report not found, got %v", err)
	}

	if len(repo.products) != 2 || repo.products[0].Name != "Sneaker" {
		t.Fatalf("foreign mutation reached the store: %+v", repo.products)
	}
	page, _ := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	if len(page.Rows) != 2 {
		t.Fatalf("owner's cached rows must be untouched, got %d", len(page.Rows))
	}
}

func TestFailedMutationLeavesCacheUntouched(t *testing.T) {
	repo := &fakeRepo{products: seedProducts("Sneaker")}
	service := newService(repo)
	if _, err := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10}); err != nil {
		t.Fatal(err)
	}

	repo.writeErr = errors.New("backend down")
	if _, err := service.Create(context.Background(), "u1", CreateProductRequest{Name: "Boot"}); err == nil {
		t.Fatal("expected create to fail")
	}

	page, _ := service.List(context.Background(), "u1", shared.ListQuery{Page: 1, PageSize: 10})
	if len(page.Rows) != 1 || page.Rows[0].Name != "Sneaker" {
		t.Fatalf("failed mutation must not change the cache: %+v", page.Rows)
	}
}
