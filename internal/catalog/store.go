package catalog

import "context"

// ProductStore describes persistence operations for products.
type ProductStore interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	SearchByName(ctx context.Context, name string) ([]*Product, error)
	ListPriceBelow(ctx context.Context, cents int64) ([]*Product, error)
	ListPriceAbove(ctx context.Context, cents int64) ([]*Product, error)
}

// CategoryStore describes persistence operations for categories.
type CategoryStore interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	SearchByKeyword(ctx context.Context, keyword string) ([]*Category, error)
}
