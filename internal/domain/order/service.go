package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/storefront-labs/storefront/internal/domain/cart"
	"github.com/storefront-labs/storefront/internal/domain/item"
	"github.com/storefront-labs/storefront/internal/domain/user"
)

// Service encapsulates order submission and history lookup.
type Service struct {
	users  user.Repository
	carts  cart.Repository
	orders Repository
	now    func() time.Time
}

// NewService creates an order Service with the required repositories.
func NewService(users user.Repository, carts cart.Repository, orders Repository) *Service {
	return &Service{
		users:  users,
		carts:  carts,
		orders: orders,
		now:    time.Now,
	}
}

// Submit snapshots the user's current cart into a new order and persists it.
// The cart itself is left untouched.
func (s *Service) Submit(ctx context.Context, username string) (*Order, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	c, err := s.carts.GetByUserID(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "load cart")
	}

	// Copy the item sequence so the order shares no backing array with the
	// live cart.
	items := make([]item.Item, len(c.Items))
	copy(items, c.Items)

	o := &Order{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		Items:     items,
		Total:     c.Total,
		CreatedAt: s.now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// History returns every order the user has submitted, newest first.
func (s *Service) History(ctx context.Context, username string) ([]Order, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListByUserID(ctx, u.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}
