package cart

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/storefront-labs/storefront/internal/domain/item"
	"github.com/storefront-labs/storefront/internal/domain/user"
	"github.com/storefront-labs/storefront/pkg/keylock"
)

// InvalidQuantityError indicates a cart mutation with a non-positive quantity.
type InvalidQuantityError struct {
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0, got %d", e.Quantity)
}

// Service encapsulates cart mutations. All read-modify-write cycles on one
// user's cart are serialized with a per-username lock; without it two
// concurrent mutations race on the stored item sequence and one update is
// lost.
type Service struct {
	users user.Repository
	items item.Repository
	carts Repository
	locks *keylock.KeyLock
}

// NewService creates a cart Service with the required repositories.
func NewService(users user.Repository, items item.Repository, carts Repository) *Service {
	return &Service{
		users: users,
		items: items,
		carts: carts,
		locks: keylock.New(),
	}
}

// Get returns the current cart of the given user.
func (s *Service) Get(ctx context.Context, username string) (*Cart, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.carts.GetByUserID(ctx, u.ID)
}

// Add appends quantity copies of the item to the user's cart and recomputes
// the total. It returns the updated cart.
func (s *Service) Add(ctx context.Context, username, itemID string, quantity int) (*Cart, error) {
	return s.mutate(ctx, username, itemID, quantity, func(c *Cart, it *item.Item, qty int) {
		for range qty {
			c.Items = append(c.Items, *it)
		}
	})
}

// Remove deletes up to quantity entries of the item from the user's cart.
// When fewer matching entries are present, all of them are removed; removal
// never fails for lack of entries. The total is recomputed from the remaining
// sequence.
func (s *Service) Remove(ctx context.Context, username, itemID string, quantity int) (*Cart, error) {
	return s.mutate(ctx, username, itemID, quantity, func(c *Cart, it *item.Item, qty int) {
		kept := c.Items[:0]
		removed := 0
		for _, entry := range c.Items {
			if entry.ID == it.ID && removed < qty {
				removed++
				continue
			}
			kept = append(kept, entry)
		}
		c.Items = kept
	})
}

// mutate resolves the user and item, then applies fn to the cart under the
// user's lock and persists the result.
func (s *Service) mutate(
	ctx context.Context,
	username, itemID string,
	quantity int,
	fn func(c *Cart, it *item.Item, qty int),
) (*Cart, error) {
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(u.Username)
	defer s.locks.Unlock(u.Username)

	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	fn(c, it, quantity)
	c.Total = c.SumItems()

	if err := s.carts.Save(ctx, c); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return c, nil
}
