package item

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("item not found")

// Item represents a catalog entry available for purchase. The catalog is
// read-only at runtime; rows are seeded by cmd/seed-db.
type Item struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
}

// Repository defines read operations for the item catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	// FindByName matches item names case-insensitively by substring.
	// An empty result is not an error.
	FindByName(ctx context.Context, name string) ([]Item, error)
}
