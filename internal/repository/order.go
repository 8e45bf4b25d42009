package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/storefront-labs/storefront/internal/domain/item"
	"github.com/storefront-labs/storefront/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (id, user_id, items, total, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	listOrdersByUserSQL = `SELECT id, user_id, items, total, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
)

// orderItemRow is the JSONB representation of one snapshotted item.
type orderItemRow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. The snapshotted item sequence is serialized to
// JSON for storage in the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	rows := make([]orderItemRow, len(o.Items))
	for i, it := range o.Items {
		rows[i] = orderItemRow(it)
	}
	itemsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.UserID, itemsJSON, o.Total, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// ListByUserID returns the user's orders, newest first.
func (r *OrderRepository) ListByUserID(ctx context.Context, userID string) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for user %q: %w", userID, err)
	}
	return pgx.CollectRows(rows, scanOrder)
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		itemsJSON []byte
		total     decimal.Decimal
	)
	if err := row.Scan(&o.ID, &o.UserID, &itemsJSON, &total, &o.CreatedAt); err != nil {
		return o, err
	}
	o.Total = total

	var itemRows []orderItemRow
	if err := json.Unmarshal(itemsJSON, &itemRows); err != nil {
		return o, fmt.Errorf("unmarshaling order items: %w", err)
	}
	o.Items = make([]item.Item, len(itemRows))
	for i, r := range itemRows {
		o.Items[i] = item.Item(r)
	}
	return o, nil
}
