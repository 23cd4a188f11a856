package listing

import (
	"reflect"
	"testing"

	"github.com/vaulta/vaulta/internal/shared"
)

type row struct {
	Name     string
	Email    string
	Spent    float64
	Archived bool
}

var (
	searchable = []StringField[row]{
		func(r row) string { return r.Name },
		func(r row) string { return r.Email },
	}
	sortable = SortFields[row]{
		Strings: map[string]StringField[row]{
			"name":  func(r row) string { return r.Name },
			"email": func(r row) string { return r.Email },
		},
		Numbers: map[string]NumberField[row]{
			"spent": func(r row) float64 { return r.Spent },
		},
	}
)

func TestFilterMatchesAnyField(t *testing.T) {
	rows := []row{
		{Name: "Chelsea Boot", Email: "shop@acme.test"},
		{Name: "Sneaker", Email: "boots@acme.test"},
		{Name: "Loafer", Email: "fine@acme.test"},
	}

	got := Filter(rows, "boot", searchable)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches got %d", len(got))
	}
	for _, r := range got {
		if !Match(r, "boot", searchable) {
			t.Fatalf("filtered row %q does not match", r.Name)
		}
	}
}

func TestFilterIsSubsetWithoutDuplicates(t *testing.T) {
	rows := []row{
		{Name: "alpha"}, {Name: "beta"}, {Name: "alphabet"},
	}
	got := Filter(rows, "alpha", searchable)

	seen := map[string]bool{}
	for _, r := range got {
		if seen[r.Name] {
			t.Fatalf("duplicate row %q", r.Name)
		}
		seen[r.Name] = true

		found := false
		for _, src := range rows {
			if src == r {
				found = true
			}
		}
		if !found {
			t.Fatalf("row %q not present in source", r.Name)
		}
	}
}

func TestFilterEmptyKeywordKeepsAll(t *testing.T) {
	rows := []row{{Name: "a"}, {Name: "b"}}
	if got := Filter(rows, "", searchable); len(got) != 2 {
		t.Fatalf("expected all rows, got %d", len(got))
	}
}

func TestSortByStringField(t *testing.T) {
	rows := []row{{Name: "charlie"}, {Name: " Alice "}, {Name: "bob"}}

	got := Sort(rows, "name", shared.SortAsc, sortable)
	want := []string{" Alice ", "bob", "charlie"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("position %d: got %q want %q", i, got[i].Name, name)
		}
	}

	// source untouched
	if rows[0].Name != "charlie" {
		t.Fatal("Sort must not mutate its input")
	}
}

func TestSortByNumberFieldDescending(t *testing.T) {
	rows := []row{{Spent: 10}, {Spent: 250}, {Spent: 42}}
	got := Sort(rows, "spent", shared.SortDesc, sortable)
	if got[0].Spent != 250 || got[2].Spent != 10 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestSortUnknownFieldKeepsOrder(t *testing.T) {
	rows := []row{{Name: "z"}, {Name: "a"}}
	got := Sort(rows, "nope", shared.SortAsc, sortable)
	if got[0].Name != "z" || got[1].Name != "a" {
		t.Fatalf("unknown field must keep order: %+v", got)
	}
}

func TestSortIsStableOnTies(t *testing.T) {
	rows := []row{
		{Name: "same", Email: "first"},
		{Name: "SAME", Email: "second"},
		{Name: " same ", Email: "third"},
	}
	got := Sort(rows, "name", shared.SortAsc, sortable)
	want := []string{"first", "second", "third"}
	for i, email := range want {
		if got[i].Email != email {
			t.Fatalf("tie order changed at %d: got %q want %q", i, got[i].Email, email)
		}
	}
}

func TestPartition(t *testing.T) {
	rows := []row{
		{Name: "live"},
		{Name: "gone", Archived: true},
		{Name: "active"},
	}
	primary, history := Partition(rows, func(r row) bool { return r.Archived })
	if len(primary) != 2 || len(history) != 1 {
		t.Fatalf("unexpected split: %d/%d", len(primary), len(history))
	}
	if history[0].Name != "gone" {
		t.Fatalf("wrong record archived: %q", history[0].Name)
	}
}

func TestSliceBounds(t *testing.T) {
	rows := []row{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	page := Slice(rows, 1, 2)
	if len(page.Rows) != 2 || page.HasPrev || !page.HasNext {
		t.Fatalf("unexpected first page: %+v", page)
	}

	page = Slice(rows, 2, 2)
	if len(page.Rows) != 1 || !page.HasPrev || page.HasNext {
		t.Fatalf("unexpected last page: %+v", page)
	}

	// past the end: empty rows, no failure
	page = Slice(rows, 9, 2)
	if len(page.Rows) != 0 {
		t.Fatalf("out-of-range page should be empty: %+v", page)
	}
}

func TestViewEndToEnd(t *testing.T) {
	rows := make([]row, 0, 13)
	for _, name := range []string{
		"Chelsea Boot", "Sneaker", "Loafer", "Desert Boot", "Sandal",
		"Mule", "Oxford", "Derby", "Monk", "Brogue",
		"Slipper", "Clog", "Moccasin",
	} {
		rows = append(rows, row{Name: name})
	}

	page := View(rows, shared.ListQuery{
		Keyword:       "boot",
		SortDirection: shared.SortAsc,
		Page:          1,
		PageSize:      5,
	}, searchable, sortable)

	if page.Pagination.TotalPages != 1 {
		t.Fatalf("expected a single page, got %d", page.Pagination.TotalPages)
	}
	if len(page.Rows) != 2 {
		t.Fatalf("expected both matches, got %d", len(page.Rows))
	}
	if page.HasPrev || page.HasNext {
		t.Fatal("prev and next must both be disabled")
	}
	if !reflect.DeepEqual(page.Window, []string{"1"}) {
		t.Fatalf("unexpected window %v", page.Window)
	}
}
