package catalog

import (
	"context"
	"errors"
	"testing"
)

func seedProducts(t *testing.T, store *InMemoryProducts) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []*Product{
		{Name: "Margherita Pizza", PriceCents: 4500, NutriScore: "C", Ingredients: "tomato, mozzarella, basil", CategoryID: "cat-1", UserID: "u-1"},
		{Name: "Veggie Pizza", PriceCents: 5200, NutriScore: "B", Ingredients: "tomato, peppers, olives", CategoryID: "cat-1", UserID: "u-1"},
		{Name: "Green Salad", PriceCents: 2800, NutriScore: "A", Ingredients: "lettuce, cucumber", CategoryID: "cat-2", UserID: "u-2"},
	} {
		if err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create(%s): %v", p.Name, err)
		}
	}
}

func TestInMemoryProductsCRUD(t *testing.T) {
	store := NewInMemoryProducts()
	ctx := context.Background()
	seedProducts(t, store)

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 products, got %d", len(all))
	}

	first := all[0]
	first.PriceCents = 4700
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := store.Find(ctx, first.ID)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.PriceCents != 4700 {
		t.Fatalf("update not persisted: %+v", got)
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Find(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete: expected ErrNotFound, got %v", err)
	}
	if err := store.Update(ctx, &Product{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: expected ErrNotFound, got %v", err)
	}
}

func TestInMemoryProductsQueries(t *testing.T) {
	store := NewInMemoryProducts()
	ctx := context.Background()
	seedProducts(t, store)

	pizzas, err := store.SearchByName(ctx, "PIZZA")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(pizzas) != 2 {
		t.Fatalf("expected 2 pizzas, got %d", len(pizzas))
	}

	cheap, err := store.ListPriceBelow(ctx, 4500)
	if err != nil {
		t.Fatalf("ListPriceBelow: %v", err)
	}
	if len(cheap) != 1 || cheap[0].Name != "Green Salad" {
		t.Fatalf("unexpected cheap products: %+v", cheap)
	}

	pricey, err := store.ListPriceAbove(ctx, 4500)
	if err != nil {
		t.Fatalf("ListPriceAbove: %v", err)
	}
	if len(pricey) != 1 || pricey[0].Name != "Veggie Pizza" {
		t.Fatalf("unexpected pricey products: %+v", pricey)
	}
}

func TestInMemoryCategories(t *testing.T) {
	store := NewInMemoryCategories()
	ctx := context.Background()

	cat := &Category{Description: "Italian food", Keyword: "pizza pasta"}
	if err := store.Create(ctx, cat); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.ID == "" {
		t.Fatal("expected an assigned id")
	}

	found, err := store.SearchByKeyword(ctx, "Pasta")
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if len(found) != 1 || found[0].ID != cat.ID {
		t.Fatalf("unexpected search result: %+v", found)
	}

	none, err := store.SearchByKeyword(ctx, "sushi")
	if err != nil {
		t.Fatalf("SearchByKeyword: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %+v", none)
	}

	if err := store.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Find(ctx, cat.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProductValidate(t *testing.T) {
	valid := Product{Name: "Pizza", PriceCents: 100, NutriScore: "a", Ingredients: "dough", CategoryID: "c", UserID: "u"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}
	if valid.NutriScore != "A" {
		t.Fatalf("nutri-score not normalized: %q", valid.NutriScore)
	}

	cases := map[string]Product{
		"empty name":      {PriceCents: 100, NutriScore: "A", Ingredients: "x", CategoryID: "c", UserID: "u"},
		"zero price":      {Name: "P", NutriScore: "A", Ingredients: "x", CategoryID: "c", UserID: "u"},
		"bad nutri-score": {Name: "P", PriceCents: 100, NutriScore: "F", Ingredients: "x", CategoryID: "c", UserID: "u"},
		"no ingredients":  {Name: "P", PriceCents: 100, NutriScore: "A", CategoryID: "c", UserID: "u"},
		"no category":     {Name: "P", PriceCents: 100, NutriScore: "A", Ingredients: "x", UserID: "u"},
		"no owner":        {Name: "P", PriceCents: 100, NutriScore: "A", Ingredients: "x", CategoryID: "c"},
	}
	for name, p := range cases {
		if err := p.Validate(); !errors.Is(err, ErrInvalidProduct) {
			t.Fatalf("%s: expected ErrInvalidProduct, got %v", name, err)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	valid := Category{Description: "Drinks", Keyword: "juice soda"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	for name, c := range map[string]Category{
		"empty description": {Keyword: "k"},
		"empty keyword":     {Description: "d"},
	} {
		if err := c.Validate(); !errors.Is(err, ErrInvalidCategory) {
			t.Fatalf("%s: expected ErrInvalidCategory, got %v", name, err)
		}
	}
}
