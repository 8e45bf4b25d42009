package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storefront-labs/storefront/internal/domain/item"
)

const (
	listItemsSQL = `SELECT id, name, description, price
		FROM items ORDER BY id`

	getItemByIDSQL = `SELECT id, name, description, price
		FROM items WHERE id = $1`

	findItemsByNameSQL = `SELECT id, name, description, price
		FROM items WHERE name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY id`

	insertItemSQL = `INSERT INTO items (id, name, description, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price`
)

var _ item.Repository = (*ItemRepository)(nil)

// ItemRepository implements item.Repository backed by PostgreSQL.
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns an ItemRepository that uses the given pool.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// List returns all catalog items ordered by id.
func (r *ItemRepository) List(ctx context.Context) ([]item.Item, error) {
	rows, err := r.pool.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return pgx.CollectRows(rows, scanItem)
}

// GetByID returns a single item by its identifier.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (*item.Item, error) {
	rows, err := r.pool.Query(ctx, getItemByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting item %q: %w", id, err)
	}

	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, item.ErrNotFound
		}
		return nil, fmt.Errorf("getting item %q: %w", id, err)
	}
	return &it, nil
}

// FindByName returns items whose name contains the given string,
// case-insensitively. The string is matched literally; LIKE metacharacters
// in it carry no wildcard meaning. No match yields an empty slice, not an
// error.
func (r *ItemRepository) FindByName(ctx context.Context, name string) ([]item.Item, error) {
	rows, err := r.pool.Query(ctx, findItemsByNameSQL, escapeLike(name))
	if err != nil {
		return nil, fmt.Errorf("finding items by name %q: %w", name, err)
	}
	return pgx.CollectRows(rows, scanItem)
}

// escapeLike neutralizes LIKE pattern metacharacters so the argument matches
// as a literal substring.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Upsert inserts or updates a catalog item. Used by cmd/seed-db.
func (r *ItemRepository) Upsert(ctx context.Context, it *item.Item) error {
	_, err := r.pool.Exec(ctx, insertItemSQL, it.ID, it.Name, it.Description, it.Price)
	if err != nil {
		return fmt.Errorf("upserting item %q: %w", it.ID, err)
	}
	return nil
}

func scanItem(row pgx.CollectableRow) (item.Item, error) {
	var (
		it    item.Item
		price decimal.Decimal
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &price)
	it.Price = price
	return it, err
}
