package catalog

import (
	"fmt"
	"strings"
	"time"
)

// Product is a catalog item offered for delivery. Prices are stored in cents
// to avoid floating point drift.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"price_cents"`
	Image       string    `json:"image,omitempty"`
	NutriScore  string    `json:"nutri_score"`
	Ingredients string    `json:"ingredients"`
	CategoryID  string    `json:"category_id"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category groups products under a description and a search keyword.
type Category struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Keyword     string    `json:"keyword"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const maxProductNameLen = 50

// Validate normalizes the product and reports the first constraint violation.
func (p *Product) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Ingredients = strings.TrimSpace(p.Ingredients)
	p.NutriScore = strings.ToUpper(strings.TrimSpace(p.NutriScore))
	if p.Name == "" || len(p.Name) > maxProductNameLen {
		return fmt.Errorf("%w: name must be between 1 and %d characters", ErrInvalidProduct, maxProductNameLen)
	}
	if p.PriceCents <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", ErrInvalidProduct)
	}
	switch p.NutriScore {
	case "A", "B", "C", "D", "E":
	default:
		return fmt.Errorf("%w: nutri-score must be one of A, B, C, D, E", ErrInvalidProduct)
	}
	if p.Ingredients == "" || len(p.Ingredients) > 255 {
		return fmt.Errorf("%w: ingredients must be between 1 and 255 characters", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.CategoryID) == "" {
		return fmt.Errorf("%w: category_id is required", ErrInvalidProduct)
	}
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidProduct)
	}
	return nil
}

// Validate normalizes the category and reports the first constraint violation.
func (c *Category) Validate() error {
	c.Description = strings.TrimSpace(c.Description)
	c.Keyword = strings.TrimSpace(c.Keyword)
	if c.Description == "" || len(c.Description) > 255 {
		return fmt.Errorf("%w: description must be between 1 and 255 characters", ErrInvalidCategory)
	}
	if c.Keyword == "" || len(c.Keyword) > 500 {
		return fmt.Errorf("%w: keyword must be between 1 and 500 characters", ErrInvalidCategory)
	}
	return nil
}
