package catalog

import "errors"

var (
	ErrNotFound        = errors.New("catalog: not found")
	ErrInvalidProduct  = errors.New("catalog: invalid product")
	ErrInvalidCategory = errors.New("catalog: invalid category")
)
