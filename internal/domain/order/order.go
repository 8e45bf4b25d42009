package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront-labs/storefront/internal/domain/item"
)

// Order is an immutable snapshot of a user's cart taken at submission time.
// Items and Total are copied from the cart; later cart mutations do not
// affect already submitted orders.
type Order struct {
	ID        string
	UserID    string
	Items     []item.Item
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	// ListByUserID returns the user's orders, newest first.
	ListByUserID(ctx context.Context, userID string) ([]Order, error)
}
