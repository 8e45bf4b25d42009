package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storefront-labs/storefront/internal/domain/cart"
)

const (
	getCartByUserIDSQL = `SELECT id, user_id, total
		FROM carts WHERE user_id = $1`

	getCartItemsSQL = `SELECT i.id, i.name, i.description, i.price
		FROM cart_items ci
		JOIN items i ON i.id = ci.item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`

	deleteCartItemsSQL = `DELETE FROM cart_items WHERE cart_id = $1`

	updateCartTotalSQL = `UPDATE carts SET total = $2 WHERE id = $1`
)

var _ cart.Repository = (*CartRepository)(nil)

// CartRepository implements cart.Repository backed by PostgreSQL. The item
// sequence is stored one row per unit in cart_items, ordered by insertion.
type CartRepository struct {
	pool *pgxpool.Pool
}

// NewCartRepository returns a CartRepository that uses the given pool.
func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

// GetByUserID loads the user's cart together with its full item sequence.
func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var (
		c     cart.Cart
		total decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, getCartByUserIDSQL, userID).Scan(&c.ID, &c.UserID, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("cart for user %q not found: %w", userID, err)
		}
		return nil, fmt.Errorf("getting cart for user %q: %w", userID, err)
	}
	c.Total = total

	rows, err := r.pool.Query(ctx, getCartItemsSQL, c.ID)
	if err != nil {
		return nil, fmt.Errorf("getting cart items: %w", err)
	}
	c.Items, err = pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("getting cart items: %w", err)
	}

	return &c, nil
}

// Save replaces the cart's stored item sequence and total in one transaction.
// The caller serializes concurrent saves per user, so replace-all writes do
// not interleave.
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, deleteCartItemsSQL, c.ID); err != nil {
		return fmt.Errorf("clearing cart %q: %w", c.ID, err)
	}

	if len(c.Items) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"cart_items"},
			[]string{"cart_id", "item_id"},
			pgx.CopyFromSlice(len(c.Items), func(i int) ([]any, error) {
				return []any{c.ID, c.Items[i].ID}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("writing cart items: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, updateCartTotalSQL, c.ID, c.Total); err != nil {
		return fmt.Errorf("updating cart total: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing cart %q: %w", c.ID, err)
	}
	return nil
}
