package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/storefront-labs/storefront/internal/domain/item"
)

// Cart is a user's mutable pre-checkout collection of items. Items holds one
// entry per unit, so adding three of the same item appends three entries.
// Total must equal the sum of the entry prices after every mutation.
type Cart struct {
	ID     string
	UserID string
	Items  []item.Item
	Total  decimal.Decimal
}

// SumItems computes the total of the current item sequence. Mutations always
// recompute the total from the sequence instead of adjusting it by arithmetic,
// so the cached Total cannot drift from the invariant.
func (c *Cart) SumItems() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price)
	}
	return total
}

// Repository defines persistence operations for carts. Save replaces the
// stored item sequence and total atomically.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
}
