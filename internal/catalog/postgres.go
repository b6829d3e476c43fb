package catalog

import (
	"context"
	"database/sql"

	"entrega.dev/internal/ids"
)

var (
	_ ProductStore  = (*PGProducts)(nil)
	_ CategoryStore = (*PGCategories)(nil)
)

// PGProducts implements ProductStore on PostgreSQL.
type PGProducts struct {
	db *sql.DB
}

func NewPGProducts(db *sql.DB) *PGProducts {
	return &PGProducts{db: db}
}

const productColumns = `id, name, price_cents, image, nutri_score, ingredients, category_id, user_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Image, &p.NutriScore,
		&p.Ingredients, &p.CategoryID, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PGProducts) Create(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = ids.New()
	}
	return s.db.QueryRowContext(ctx,
		`insert into products(id, name, price_cents, image, nutri_score, ingredients, category_id, user_id)
		 values($1,$2,$3,$4,$5,$6,$7,$8)
		 returning created_at, updated_at`,
		p.ID, p.Name, p.PriceCents, p.Image, p.NutriScore, p.Ingredients, p.CategoryID, p.UserID,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (s *PGProducts) Update(ctx context.Context, p *Product) error {
	res, err := s.db.ExecContext(ctx,
		`update products set name=$2, price_cents=$3, image=$4, nutri_score=$5,
		 ingredients=$6, category_id=$7, user_id=$8, updated_at=now() where id=$1`,
		p.ID, p.Name, p.PriceCents, p.Image, p.NutriScore, p.Ingredients, p.CategoryID, p.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGProducts) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from products where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGProducts) Find(ctx context.Context, id string) (*Product, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+productColumns+` from products where id=$1`, id)
	return scanProduct(row)
}

func (s *PGProducts) List(ctx context.Context) ([]*Product, error) {
	return s.query(ctx, `select `+productColumns+` from products order by created_at`)
}

func (s *PGProducts) SearchByName(ctx context.Context, name string) ([]*Product, error) {
	return s.query(ctx,
		`select `+productColumns+` from products where name ilike '%'||$1||'%' order by created_at`, name)
}

func (s *PGProducts) ListPriceBelow(ctx context.Context, cents int64) ([]*Product, error) {
	return s.query(ctx,
		`select `+productColumns+` from products where price_cents < $1 order by price_cents`, cents)
}

func (s *PGProducts) ListPriceAbove(ctx context.Context, cents int64) ([]*Product, error) {
	return s.query(ctx,
		`select `+productColumns+` from products where price_cents > $1 order by price_cents`, cents)
}

func (s *PGProducts) query(ctx context.Context, q string, args ...any) ([]*Product, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PGCategories implements CategoryStore on PostgreSQL.
type PGCategories struct {
	db *sql.DB
}

func NewPGCategories(db *sql.DB) *PGCategories {
	return &PGCategories{db: db}
}

const categoryColumns = `id, description, keyword, image, created_at, updated_at`

func scanCategory(row interface{ Scan(...any) error }) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.Description, &c.Keyword, &c.Image, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *PGCategories) Create(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = ids.New()
	}
	return s.db.QueryRowContext(ctx,
		`insert into categories(id, description, keyword, image)
		 values($1,$2,$3,$4)
		 returning created_at, updated_at`,
		c.ID, c.Description, c.Keyword, c.Image,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (s *PGCategories) Update(ctx context.Context, c *Category) error {
	res, err := s.db.ExecContext(ctx,
		`update categories set description=$2, keyword=$3, image=$4, updated_at=now() where id=$1`,
		c.ID, c.Description, c.Keyword, c.Image,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGCategories) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from categories where id=$1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *PGCategories) Find(ctx context.Context, id string) (*Category, error) {
	row := s.db.QueryRowContext(ctx,
		`select `+categoryColumns+` from categories where id=$1`, id)
	return scanCategory(row)
}

func (s *PGCategories) List(ctx context.Context) ([]*Category, error) {
	return s.query(ctx, `select `+categoryColumns+` from categories order by created_at`)
}

func (s *PGCategories) SearchByKeyword(ctx context.Context, keyword string) ([]*Category, error) {
	return s.query(ctx,
		`select `+categoryColumns+` from categories where keyword ilike '%'||$1||'%' order by created_at`, keyword)
}

func (s *PGCategories) query(ctx context.Context, q string, args ...any) ([]*Category, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
