package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-labs/storefront/internal/domain/user"
)

const (
	getUserByIDSQL = `SELECT id, username, password_hash, created_at
		FROM users WHERE id = $1`

	getUserByUsernameSQL = `SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1`

	insertUserSQL = `INSERT INTO users (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	insertCartSQL = `INSERT INTO carts (id, user_id, total)
		VALUES ($1, $2, 0)`
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a UserRepository that uses the given pool.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindByID returns the user with the given id, or user.ErrNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	return r.findOne(ctx, getUserByIDSQL, id)
}

// FindByUsername returns the user with the given username, or user.ErrNotFound.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, getUserByUsernameSQL, username)
}

func (r *UserRepository) findOne(ctx context.Context, sql, arg string) (*user.User, error) {
	rows, err := r.pool.Query(ctx, sql, arg)
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	u, err := pgx.CollectExactlyOneRow(rows, scanUser)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// CreateWithCart inserts the user and an empty cart in a single transaction
// and reads back the database-assigned creation timestamp. A duplicate
// username surfaces as user.ErrUsernameTaken so the race between the
// service's lookup and this insert still maps to a client error.
func (r *UserRepository) CreateWithCart(ctx context.Context, u *user.User, cartID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	err = tx.QueryRow(ctx, insertUserSQL, u.ID, u.Username, u.PasswordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return user.ErrUsernameTaken
		}
		return fmt.Errorf("inserting user %q: %w", u.Username, err)
	}

	if _, err := tx.Exec(ctx, insertCartSQL, cartID, u.ID); err != nil {
		return fmt.Errorf("inserting cart for user %q: %w", u.Username, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing user %q: %w", u.Username, err)
	}
	return nil
}

func scanUser(row pgx.CollectableRow) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	return u, err
}
