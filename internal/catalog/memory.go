package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"entrega.dev/internal/ids"
)

var (
	_ ProductStore  = (*InMemoryProducts)(nil)
	_ CategoryStore = (*InMemoryCategories)(nil)
)

// InMemoryProducts implements ProductStore with in-process locking. Used by
// tests and for DSN-less development runs.
type InMemoryProducts struct {
	mu    sync.RWMutex
	items map[string]*Product
}

func NewInMemoryProducts() *InMemoryProducts {
	return &InMemoryProducts{items: make(map[string]*Product)}
}

func (s *InMemoryProducts) Create(ctx context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = ids.New()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *InMemoryProducts) Update(ctx context.Context, p *Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.items[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *InMemoryProducts) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *InMemoryProducts) Find(ctx context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryProducts) List(ctx context.Context) ([]*Product, error) {
	return s.filter(func(*Product) bool { return true }), nil
}

func (s *InMemoryProducts) SearchByName(ctx context.Context, name string) ([]*Product, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	return s.filter(func(p *Product) bool {
		return strings.Contains(strings.ToLower(p.Name), needle)
	}), nil
}

func (s *InMemoryProducts) ListPriceBelow(ctx context.Context, cents int64) ([]*Product, error) {
	return s.filter(func(p *Product) bool { return p.PriceCents < cents }), nil
}

func (s *InMemoryProducts) ListPriceAbove(ctx context.Context, cents int64) ([]*Product, error) {
	return s.filter(func(p *Product) bool { return p.PriceCents > cents }), nil
}

func (s *InMemoryProducts) filter(keep func(*Product) bool) []*Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Product
	for _, p := range s.items {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// InMemoryCategories implements CategoryStore with in-process locking.
type InMemoryCategories struct {
	mu    sync.RWMutex
	items map[string]*Category
}

func NewInMemoryCategories() *InMemoryCategories {
	return &InMemoryCategories{items: make(map[string]*Category)}
}

func (s *InMemoryCategories) Create(ctx context.Context, c *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = ids.New()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *InMemoryCategories) Update(ctx context.Context, c *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.items[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *InMemoryCategories) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *InMemoryCategories) Find(ctx context.Context, id string) (*Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *InMemoryCategories) List(ctx context.Context) ([]*Category, error) {
	return s.filter(func(*Category) bool { return true }), nil
}

func (s *InMemoryCategories) SearchByKeyword(ctx context.Context, keyword string) ([]*Category, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	return s.filter(func(c *Category) bool {
		return strings.Contains(strings.ToLower(c.Keyword), needle)
	}), nil
}

func (s *InMemoryCategories) filter(keep func(*Category) bool) []*Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Category
	for _, c := range s.items {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
